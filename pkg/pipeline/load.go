package pipeline

import (
	"fmt"

	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Source is a loaded period.
type Source struct {
	Chart *org.Chart
	// Period is the resolved period id.
	Period string
	// Issues are the node records skipped while building Chart. They are
	// reported ahead of the engine's issues in the layout.
	Issues []error
}

// LoadDataset reads the dataset file at path, or returns the embedded sample
// when path is empty.
func LoadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Sample(), nil
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

// Load reads the chart of opts.Period from opts.Dataset. Bad node records
// are skipped and returned in Source.Issues; only an unreadable dataset or
// an unknown period is an error.
func Load(opts Options) (Source, error) {
	ds, err := LoadDataset(opts.Dataset)
	if err != nil {
		return Source{}, err
	}
	period := opts.Period
	if period == "" {
		period = ds.Default
	}
	c, issues, err := ds.Chart(period)
	if err != nil {
		return Source{}, err
	}
	return Source{Chart: c, Period: period, Issues: issues}, nil
}
