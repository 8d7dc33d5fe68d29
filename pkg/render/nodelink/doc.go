// Package nodelink renders positioned org charts through Graphviz.
//
// # Overview
//
// The layout engine has already decided where every node goes, so the DOT
// source produced here pins each node with pos="x,y!" and renders with the
// neato engine, which honors pinned positions instead of computing its own.
// Graphviz then only draws boxes and routes the reporting lines.
//
// # Usage
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
//   - Detailed: add the subtitle (title or role, department) under the label
//
// # Coordinates
//
// Layout coordinates grow downward; Graphviz coordinates grow upward. ToDOT
// negates y and sets inputscale=72 so one layout unit is one point.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering
// of both SVG and PNG; no external Graphviz installation is needed.
package nodelink
