package dataset

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
)

// CurrentPeriod names the period of a bare chart file.
const CurrentPeriod = "current"

// Format is a dataset file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", orgerrors.New(orgerrors.ErrCodeInvalidFormat, "unsupported dataset extension %q (use .toml, .yaml or .json)", filepath.Ext(path))
}

// Dataset is a named set of projection periods.
type Dataset struct {
	Name    string
	Default string
	Periods []Period
}

// Period is one projection of the org.
type Period struct {
	ID    string
	Label string
	Chart graph.Chart
}

// file is the on-disk shape. Nodes and Edges at the top level make a bare
// chart file.
type file struct {
	Name    string       `json:"name" toml:"name" yaml:"name"`
	Default string       `json:"default" toml:"default" yaml:"default"`
	Periods []periodFile `json:"periods" toml:"periods" yaml:"periods"`
	Nodes   []graph.Node `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges   []graph.Edge `json:"edges" toml:"edges" yaml:"edges"`
}

type periodFile struct {
	ID    string       `json:"id" toml:"id" yaml:"id"`
	Label string       `json:"label" toml:"label" yaml:"label"`
	Nodes []graph.Node `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []graph.Edge `json:"edges" toml:"edges" yaml:"edges"`
}

//go:embed data/sample.toml
var sampleData []byte

// Sample returns the embedded mock dataset.
func Sample() *Dataset {
	ds, err := Parse(sampleData, FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded sample is invalid: %v", err))
	}
	return ds
}

// Load reads a dataset file, choosing the decoder by extension.
func Load(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, orgerrors.Wrap(orgerrors.ErrCodeFileNotFound, err, "dataset %s not found", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ds, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// Parse decodes a dataset and validates its period ids.
func Parse(data []byte, format Format) (*Dataset, error) {
	var f file
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	default:
		return nil, orgerrors.New(orgerrors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidDataset, err, "decode %s dataset", format)
	}
	return f.dataset()
}

func (f file) dataset() (*Dataset, error) {
	ds := &Dataset{Name: f.Name, Default: f.Default}

	if len(f.Periods) == 0 {
		if len(f.Nodes) == 0 {
			return nil, orgerrors.New(orgerrors.ErrCodeInvalidDataset, "dataset has no periods and no nodes")
		}
		ds.Periods = []Period{{ID: CurrentPeriod, Chart: graph.Chart{Nodes: f.Nodes, Edges: f.Edges}}}
	} else {
		if len(f.Nodes) > 0 || len(f.Edges) > 0 {
			return nil, orgerrors.New(orgerrors.ErrCodeInvalidDataset, "dataset mixes top-level nodes with periods")
		}
		seen := make(map[string]bool, len(f.Periods))
		for _, p := range f.Periods {
			if err := orgerrors.ValidatePeriodID(p.ID); err != nil {
				return nil, err
			}
			if seen[p.ID] {
				return nil, orgerrors.New(orgerrors.ErrCodeInvalidDataset, "duplicate period %q", p.ID)
			}
			seen[p.ID] = true
			ds.Periods = append(ds.Periods, Period{
				ID:    p.ID,
				Label: p.Label,
				Chart: graph.Chart{Nodes: p.Nodes, Edges: p.Edges},
			})
		}
	}

	if ds.Default == "" {
		ds.Default = ds.Periods[0].ID
	}
	if _, ok := ds.Lookup(ds.Default); !ok {
		return nil, orgerrors.New(orgerrors.ErrCodePeriodNotFound, "default period %q is not defined", ds.Default)
	}
	return ds, nil
}

// IDs returns the period ids in file order.
func (d *Dataset) IDs() []string {
	ids := make([]string, len(d.Periods))
	for i, p := range d.Periods {
		ids[i] = p.ID
	}
	return ids
}

// Lookup returns the period with the given id.
func (d *Dataset) Lookup(id string) (Period, bool) {
	for _, p := range d.Periods {
		if p.ID == id {
			return p, true
		}
	}
	return Period{}, false
}

// Period returns the chart of the given period. The empty id selects the
// default period. Node records that cannot be used are dropped; call
// [Dataset.Chart] to see them.
func (d *Dataset) Period(id string) (*org.Chart, error) {
	c, _, err := d.Chart(id)
	return c, err
}

// Chart returns the chart of the given period along with the node records
// that were skipped while building it. A bad record never fails the period:
// repeated ids keep their first occurrence and records with an invalid id or
// kind are left out. The empty id selects the default period.
func (d *Dataset) Chart(id string) (*org.Chart, []error, error) {
	if id == "" {
		id = d.Default
	}
	p, ok := d.Lookup(id)
	if !ok {
		return nil, nil, orgerrors.New(orgerrors.ErrCodePeriodNotFound, "period %q not found (available: %s)", id, strings.Join(d.IDs(), ", "))
	}
	c, issues := graph.BuildChart(p.Chart)
	return c, issues, nil
}

// DisplayLabel returns the label, falling back to the id.
func (p Period) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}
