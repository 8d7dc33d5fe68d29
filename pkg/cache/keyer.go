package cache

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	LayoutKey(chartHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a computed layout.
type LayoutKeyOpts struct {
	View              string  `json:"view"`
	HorizontalSpacing float64 `json:"h"`
	VerticalSpacing   float64 `json:"v"`
	CenterX           float64 `json:"cx"`
	BaseY             float64 `json:"by"`
	Traversal         string  `json:"traversal"`
	Components        string  `json:"components"`
	ComponentGap      float64 `json:"gap"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	NodeWidth  float64 `json:"w"`
	NodeHeight float64 `json:"h"`
	Padding    float64 `json:"pad"`
	Detailed   bool    `json:"detailed"`
	Title      string  `json:"title"`
}

// DefaultKeyer produces "layout:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the chart hash with the layout options.
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey hashes the layout hash with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
