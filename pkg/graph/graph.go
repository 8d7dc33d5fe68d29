package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/orgchart/pkg/org"
)

// =============================================================================
// Chart Serialization API
// =============================================================================

// MarshalChart converts an org chart to JSON bytes.
func MarshalChart(c *org.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeChartTo(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChartFile writes an org chart to a JSON file that dataset loading
// accepts as a single-period dataset. The file is created with 0644
// permissions.
func WriteChartFile(c *org.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeChartTo(c, f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeChartTo(c *org.Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromChart(c)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

