package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/render/nodelink"
	"github.com/matzehuels/orgchart/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			var buf bytes.Buffer
			err = svg.Render(&buf, l, opts.SVGOptions())
			data = buf.Bytes()
		case FormatDOT, FormatGraphvizSVG, FormatPNG:
			if dot == "" {
				dot = nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
			}
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatGraphvizSVG:
				data, err = nodelink.RenderSVG(ctx, dot)
			default:
				data, err = nodelink.RenderPNG(ctx, dot)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data, such as
// a layout JSON written by an earlier run.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, l, opts)
}
