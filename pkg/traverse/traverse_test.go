package traverse

import (
	"slices"
	"testing"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// fixture builds three generations:
//
//	g1 + g2 -> a
//	a + b -> c, d
//	c + ? -> e
//	d = w1 (f), ? (h)
func fixture() ([]family.Person, []family.Marriage) {
	people := []family.Person{
		{ID: "g1", Gender: family.GenderMale},
		{ID: "g2", Gender: family.GenderFemale},
		{ID: "a", Gender: family.GenderMale},
		{ID: "b", Gender: family.GenderFemale},
		{ID: "c", Gender: family.GenderMale},
		{ID: "d", Gender: family.GenderMale},
		{ID: "e"},
		{ID: "w1", Gender: family.GenderFemale},
		{ID: "f"},
		{ID: "h"},
	}
	marriages := []family.Marriage{
		{ID: "m0", Type: family.Monogamous, Spouses: []string{"g1", "g2"}, ChildrenIDs: []string{"a"}},
		{ID: "m1", Type: family.Monogamous, Spouses: []string{"a", "b"}, ChildrenIDs: []string{"c", "d"}},
		{ID: "m2", Type: family.Monogamous, Spouses: []string{"c", ""}, ChildrenIDs: []string{"e"}},
		{ID: "m3", Type: family.Polygamous, HusbandID: "d", Wives: []family.Wife{
			{WifeID: "w1", ChildrenIDs: []string{"f"}},
			{WifeID: "", ChildrenIDs: []string{"h"}},
		}},
	}
	return people, marriages
}

func fixtureGraph() *Graph {
	people, marriages := fixture()
	return New(people, marriages)
}

func TestPartners(t *testing.T) {
	g := fixtureGraph()
	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"b"}},
		{"c", nil},
		{"d", []string{"w1"}},
		{"w1", []string{"d"}},
		{"unknown", nil},
	}
	for _, tt := range tests {
		if got := g.Partners(tt.id); !slices.Equal(got, tt.want) {
			t.Errorf("Partners(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestHasChildren(t *testing.T) {
	g := fixtureGraph()
	if !g.HasChildren("a") {
		t.Error("a should have children")
	}
	if !g.HasChildren("w1") {
		t.Error("w1 should have children")
	}
	if g.HasChildren("e") {
		t.Error("e should not have children")
	}
}

func TestDescendants(t *testing.T) {
	g := fixtureGraph()
	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"c", "d", "e", "f", "h"}},
		{"b", []string{"c", "d", "e", "f", "h"}},
		{"d", []string{"f", "h"}},
		{"w1", []string{"f"}},
		{"e", nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := g.Descendants(tt.id); !slices.Equal(got, tt.want) {
				t.Errorf("Descendants(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestDescendantsCycle(t *testing.T) {
	people := []family.Person{{ID: "x"}, {ID: "y"}}
	marriages := []family.Marriage{
		{ID: "m1", Type: family.Monogamous, Spouses: []string{"x", ""}, ChildrenIDs: []string{"y"}},
		{ID: "m2", Type: family.Monogamous, Spouses: []string{"y", ""}, ChildrenIDs: []string{"x"}},
	}
	got := New(people, marriages).Descendants("x")
	if !slices.Equal(got, []string{"y"}) {
		t.Errorf("Descendants(x) = %v, want [y]", got)
	}
}

func TestHidden(t *testing.T) {
	tests := []struct {
		name      string
		collapsed []string
		keep      []string
		want      []string
	}{
		{"none", nil, nil, nil},
		{"leaf family", []string{"c"}, nil, []string{"c", "e"}},
		{"polygamous block", []string{"w1"}, nil, []string{"d", "w1", "f", "h"}},
		{"whole tree", []string{"g2"}, nil, []string{"g1", "g2", "a", "b", "c", "d", "e", "w1", "f", "h"}},
		{"keep root", []string{"a"}, []string{"a"}, []string{"b", "c", "d", "e", "w1", "f", "h"}},
		{"keep root block", []string{"a"}, []string{"a", "b"}, []string{"c", "d", "e", "w1", "f", "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people, marriages := fixture()
			for i := range people {
				people[i].IsCollapsed = slices.Contains(tt.collapsed, people[i].ID)
			}
			got := New(people, marriages).Hidden(tt.keep...)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Hidden() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHiddenSymmetric(t *testing.T) {
	// Collapsing either spouse hides the same set.
	hiddenFor := func(id string) []string {
		people, marriages := fixture()
		for i := range people {
			people[i].IsCollapsed = people[i].ID == id
		}
		return New(people, marriages).Hidden()
	}
	if a, b := hiddenFor("a"), hiddenFor("b"); !slices.Equal(a, b) {
		t.Errorf("collapse a = %v, collapse b = %v", a, b)
	}
	if d, w := hiddenFor("d"), hiddenFor("w1"); !slices.Equal(d, w) {
		t.Errorf("collapse d = %v, collapse w1 = %v", d, w)
	}
}

func TestLineageMonogamous(t *testing.T) {
	h := fixtureGraph().Lineage("e")

	wantNodes := []string{
		"e", "c", "placeholder-spouse-m2", "union-m2",
		"a", "b", "union-m1",
		"g1", "g2", "union-m0",
	}
	if !slices.Equal(h.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", h.Nodes, wantNodes)
	}
	for _, e := range []string{
		"monogamous:m2:c->union-m2",
		"monogamous:m2:placeholder-spouse-m2->union-m2",
		"parentChild:m2:union-m2->e",
		"parentChild:m1:union-m1->c",
		"parentChild:m0:union-m0->a",
	} {
		if !h.Contains(e) {
			t.Errorf("missing edge %s in %v", e, h.Edges)
		}
	}
	if len(h.Edges) != 9 {
		t.Errorf("len(Edges) = %d, want 9", len(h.Edges))
	}
	if h.Contains("d") {
		t.Error("sibling d must not be highlighted")
	}
}

func TestLineagePolygamous(t *testing.T) {
	g := fixtureGraph()

	h := g.Lineage("h")
	for _, id := range []string{
		"h", "d", "placeholder-wife-m3-1",
		"polygamous:m3:d->placeholder-wife-m3-1",
		"parentChild:m3:placeholder-wife-m3-1->h",
		"a", "b", "g1", "g2",
	} {
		if !h.Contains(id) {
			t.Errorf("Lineage(h) missing %s", id)
		}
	}
	if h.Contains("w1") {
		t.Error("w1 is not a parent of h")
	}

	f := g.Lineage("f")
	if !f.Contains("polygamous:m3:d->w1") || !f.Contains("parentChild:m3:w1->f") {
		t.Errorf("Lineage(f) edges = %v", f.Edges)
	}
}

func TestLineageRoot(t *testing.T) {
	h := fixtureGraph().Lineage("g1")
	if !slices.Equal(h.Nodes, []string{"g1"}) || len(h.Edges) != 0 {
		t.Errorf("Lineage(g1) = %+v", h)
	}
}

func TestFilterByRoot(t *testing.T) {
	g := fixtureGraph()
	tests := []struct {
		root          string
		wantPeople    []string
		wantMarriages []string
	}{
		{"c", []string{"c", "e"}, []string{"m2"}},
		{"a", []string{"a", "b", "c", "d", "e", "w1", "f", "h"}, []string{"m1", "m2", "m3"}},
		{"g1", []string{"g1", "g2", "a", "b", "c", "d", "e", "w1", "f", "h"}, []string{"m0", "m1", "m2", "m3"}},
		{"e", []string{"e"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			f, err := g.FilterByRoot(tt.root)
			if err != nil {
				t.Fatalf("FilterByRoot(%q) error = %v", tt.root, err)
			}
			var people, marriages []string
			for _, p := range f.People {
				people = append(people, p.ID)
			}
			for _, m := range f.Marriages {
				marriages = append(marriages, m.ID)
			}
			if !slices.Equal(people, tt.wantPeople) {
				t.Errorf("people = %v, want %v", people, tt.wantPeople)
			}
			if !slices.Equal(marriages, tt.wantMarriages) {
				t.Errorf("marriages = %v, want %v", marriages, tt.wantMarriages)
			}
			if f.Marriages == nil {
				t.Error("Marriages should be non-nil")
			}
		})
	}
}

func TestFilterByRootErrors(t *testing.T) {
	g := fixtureGraph()
	if _, err := g.FilterByRoot(""); !ferrors.Is(err, ferrors.ErrCodeInvalidArgument) {
		t.Errorf("empty root error = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := g.FilterByRoot("nobody"); !ferrors.Is(err, ferrors.ErrCodeNotFound) {
		t.Errorf("unknown root error = %v, want NOT_FOUND", err)
	}
}

func TestFilterByRootKeepsPlaceholders(t *testing.T) {
	people := []family.Person{
		{ID: "a"},
		{ID: "placeholder-spouse-m1", IsPlaceholder: true},
		{ID: "c"},
	}
	marriages := []family.Marriage{
		{ID: "m1", Type: family.Monogamous, Spouses: []string{"a", "placeholder-spouse-m1"}, ChildrenIDs: []string{"c"}},
	}
	f, err := New(people, marriages).FilterByRoot("c")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.People) != 1 || len(f.Marriages) != 0 {
		t.Errorf("filter from child = %+v, want only c", f)
	}

	f, err = New(people, marriages).FilterByRoot("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.People) != 3 || len(f.Marriages) != 1 {
		t.Errorf("filter from a = %+v", f)
	}
}

func TestHighestAncestor(t *testing.T) {
	g := fixtureGraph()
	tests := []struct {
		id, want string
	}{
		{"e", "g1"},
		{"h", "g1"},
		{"g1", "g1"},
		{"g2", "g2"},
		{"nobody", "nobody"},
	}
	for _, tt := range tests {
		if got := g.HighestAncestor(tt.id); got != tt.want {
			t.Errorf("HighestAncestor(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestHighestAncestorUnknownParents(t *testing.T) {
	people := []family.Person{{ID: "c"}, {ID: "w"}, {ID: "k"}}
	marriages := []family.Marriage{
		{ID: "m1", Type: family.Monogamous, Spouses: []string{"", ""}, ChildrenIDs: []string{"c"}},
		{ID: "m2", Type: family.Polygamous, Wives: []family.Wife{{WifeID: "w", ChildrenIDs: []string{"k"}}}},
	}
	g := New(people, marriages)
	if got := g.HighestAncestor("c"); got != "c" {
		t.Errorf("HighestAncestor(c) = %q, want c", got)
	}
	if got := g.HighestAncestor("k"); got != "k" {
		t.Errorf("HighestAncestor(k) = %q, want k", got)
	}
}

func TestHighestAncestorCycle(t *testing.T) {
	people := []family.Person{{ID: "x"}, {ID: "y"}}
	marriages := []family.Marriage{
		{ID: "m1", Type: family.Monogamous, Spouses: []string{"y", ""}, ChildrenIDs: []string{"x"}},
		{ID: "m2", Type: family.Monogamous, Spouses: []string{"x", ""}, ChildrenIDs: []string{"y"}},
	}
	var events []string
	g := New(people, marriages, WithTracer(func(msg string, _ ...any) { events = append(events, msg) }))
	if got := g.HighestAncestor("x"); got != "y" {
		t.Errorf("HighestAncestor(x) = %q, want y", got)
	}
	if len(events) != 1 {
		t.Errorf("events = %v, want one cycle event", events)
	}
}
