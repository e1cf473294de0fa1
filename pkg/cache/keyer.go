package cache

// Keyer generates cache keys.
type Keyer interface {
	// FamilyKey returns the key of a family snapshot loaded from a store.
	FamilyKey(backend, familyID string) string

	// LayoutKey returns the key of a layout computed from a snapshot whose
	// content hash is snapshotHash.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact of a layout whose
	// content hash is layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout.
type LayoutKeyOpts struct {
	Root             string  `json:"root"`
	Orientation      string  `json:"orientation"`
	Scope            bool    `json:"scope"`
	SortByGeneration bool    `json:"sort_by_generation"`
	NodeWidth        float64 `json:"node_width"`
	NodeHeight       float64 `json:"node_height"`
	Gap              float64 `json:"gap"`
	GenerationGap    float64 `json:"generation_gap"`
	UnionSize        float64 `json:"union_size"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed"`
	Scale    float64 `json:"scale"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FamilyKey returns "family:<backend>:<id>".
func (DefaultKeyer) FamilyKey(backend, familyID string) string {
	return "family:" + backend + ":" + familyID
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
