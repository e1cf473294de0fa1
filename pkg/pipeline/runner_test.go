package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/familytower/pkg/cache"
	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	fio "github.com/matzehuels/familytower/pkg/io"
	"github.com/matzehuels/familytower/pkg/store"
)

const familyYAML = `
people:
  - {id: anna, name: Anna, gender: female}
  - {id: ben, name: Ben, gender: male}
  - {id: cleo, name: Cleo}
  - {id: zed, name: Zed}
marriages:
  - id: m1
    marriageType: monogamous
    spouses: [anna, ben]
    childrenIds: [cleo]
`

func sampleFamily() family.Family {
	f, err := fio.ReadFamily(strings.NewReader(familyYAML), fio.FormatYAML)
	if err != nil {
		panic(err)
	}
	return f
}

func newTestRunner(t *testing.T, st store.Store) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, st, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecuteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family.yaml")
	if err := os.WriteFile(path, []byte(familyYAML), 0644); err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, nil)
	opts := Options{
		Input:   path,
		RootID:  "anna",
		Formats: []string{FormatJSON, FormatDOT, FormatPNG},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.Stats.PersonCount != 4 || first.Layout.PersonCount() != 4 {
		t.Errorf("person count = %d / %d, want 4", first.Stats.PersonCount, first.Layout.PersonCount())
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(first.Artifacts[FormatDOT]), "layout=neato") {
		t.Error("dot artifact is not a neato graph")
	}
	if _, err := png.Decode(bytes.NewReader(first.Artifacts[FormatPNG])); err != nil {
		t.Errorf("png artifact: %v", err)
	}
	res, err := fio.ReadLayout(bytes.NewReader(first.Artifacts[FormatJSON]))
	if err != nil || len(res.Nodes) != len(first.Layout.Nodes) {
		t.Errorf("json artifact: %v", err)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if second.SnapshotHash != first.SnapshotHash {
		t.Error("snapshot hash changed between identical runs")
	}
	if !bytes.Equal(second.Artifacts[FormatDOT], first.Artifacts[FormatDOT]) {
		t.Error("cached dot differs from rendered dot")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", third.CacheInfo)
	}
}

func TestExecuteFromStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	if err := st.Save(ctx, "smiths", sampleFamily()); err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(t, st)
	opts := Options{FamilyID: "smiths", RootID: "anna", Formats: []string{FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LoadHit {
		t.Error("first load should miss")
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LoadHit {
		t.Error("second load should come from cache")
	}

	_, err = r.Execute(ctx, Options{FamilyID: "jones", RootID: "anna"})
	if !ferrors.Is(err, ferrors.ErrCodeFamilyNotFound) {
		t.Errorf("missing family error = %v", err)
	}
}

func TestExecuteWithoutStore(t *testing.T) {
	r := newTestRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{FamilyID: "smiths", RootID: "anna"})
	if !ferrors.Is(err, ferrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := newTestRunner(t, nil)
	f := sampleFamily()
	_, err := r.Execute(context.Background(), Options{Family: &f, RootID: "anna", Formats: []string{"pdf"}})
	if !ferrors.Is(err, ferrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadScope(t *testing.T) {
	r := newTestRunner(t, nil)
	f := sampleFamily()

	all, err := r.Load(context.Background(), Options{Family: &f, RootID: "anna"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.People) != 4 {
		t.Errorf("unscoped people = %d, want 4", len(all.People))
	}

	scoped, err := r.Load(context.Background(), Options{Family: &f, RootID: "anna", Scope: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := scoped.Person("zed"); ok || len(scoped.People) != 3 {
		t.Errorf("scoped people = %+v", scoped.People)
	}

	if _, err := r.Load(context.Background(), Options{Family: &f, RootID: "nobody", Scope: true}); !ferrors.IsNotFound(err) {
		t.Errorf("scope to unknown root = %v, want NOT_FOUND", err)
	}
}

func TestLayoutCacheRebindsCallbacks(t *testing.T) {
	r := newTestRunner(t, nil)
	f := sampleFamily()
	var toggled string
	opts := Options{Family: &f, RootID: "anna"}
	opts.Callbacks.OnToggleCollapse = func(id string) { toggled = id }

	if _, err := r.Layout(context.Background(), f, opts); err != nil {
		t.Fatal(err)
	}
	res, _, hit, err := r.LayoutWithCacheInfo(context.Background(), f, opts)
	if err != nil || !hit {
		t.Fatalf("second layout: hit=%v err=%v", hit, err)
	}
	n, _ := res.Node("cleo")
	n.Data.OnToggleCollapse("cleo")
	if toggled != "cleo" {
		t.Error("cached layout not bound to caller callbacks")
	}
	if n.Data.OnOpenProfile == nil {
		t.Error("missing callback should default to a no-op")
	}
}

func TestRenderMissingFormatsOnly(t *testing.T) {
	r := newTestRunner(t, nil)
	f := sampleFamily()
	opts := Options{Family: &f, RootID: "anna", Formats: []string{FormatDOT}}
	res, err := r.Layout(context.Background(), f, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, hit, err := r.RenderWithCacheInfo(context.Background(), res, opts); err != nil || hit {
		t.Fatalf("first render hit=%v err=%v", hit, err)
	}

	opts.Formats = []string{FormatDOT, FormatJSON}
	artifacts, hit, err := r.RenderWithCacheInfo(context.Background(), res, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("partially cached render should not report a full hit")
	}
	if len(artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(artifacts))
	}
}
