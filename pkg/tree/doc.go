// Package tree computes hierarchical positions for org charts.
//
// # Overview
//
// [Layout] takes a node list and a parent→child edge list forming a forest
// and assigns every node a 2D position so a drawing surface can render a
// top-down org chart without overlap:
//
//   - Roots (nodes with no accepted incoming edge) sit on level 0.
//   - Every other node sits one level below its parent.
//   - Each level is spread horizontally with a fixed spacing and centered
//     on a global anchor, not under its parent.
//
// The centering rule is a deliberate simplification: levels come out
// visually balanced, but a subtree is not guaranteed to sit right under its
// parent.
//
// # Coordinates
//
// For a level with n members:
//
//	width = (n - 1) * HorizontalSpacing
//	x_i   = CenterX - width/2 + i*HorizontalSpacing
//	y     = BaseY + level*VerticalSpacing
//
// X grows to the right and Y grows downward.
//
// # Determinism
//
// Output depends only on input order. Roots are taken in node order,
// children in edge order, and each level lists its members in visitation
// order. Repeated calls with the same input produce identical positions.
//
// # Malformed Input
//
// The engine never fails. Problems are skipped, logged at warn level via
// [Options.Logger] and returned in [Result.Issues]:
//
//   - [DanglingEdgeError]: the edge names a node that is not in the input.
//   - [DuplicateParentError]: a node already has a parent. The first
//     accepted edge in input order wins.
//   - [CycleError]: a self loop, or a loop of parent pointers that no root
//     reaches. The loop is cut at its earliest member in node order, which
//     is then laid out as its own root.
//   - [DuplicateNodeError]: a repeated node id. The first occurrence is kept.
//
// # Disconnected Forests
//
// With [ComponentsShared] (the default) every tree is centered on the same
// CenterX, so unrelated trees interleave on shared levels. [ComponentsBanded]
// gives each root its own horizontal band instead.
//
// # Performance
//
// Time and space are O(V + E).
package tree
