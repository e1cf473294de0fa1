package layout

import (
	"slices"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/traverse"
)

// Build lays out the family described by in.
//
// It fails with an INVALID_ARGUMENT error when the root id is empty, a
// callback is missing, or a person or marriage record is malformed, and
// with INVALID_ORIENTATION for an unknown orientation. Degenerate data (a
// root that is not in the family, missing persons, cycles) never fails the
// call; it degrades the result and is reported to the tracer.
//
// Neither in.People nor in.Marriages is modified.
func Build(in Input, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	orientation, err := ParseOrientation(string(in.Orientation))
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidOrientation, err, "layout")
	}
	ax := axesFor(orientation)
	geo := cfg.geometry
	trace := cfg.trace

	// Collapse runs on the caller's snapshot, before any placeholder exists.
	graph := traverse.New(in.People, in.Marriages, traverse.WithTracer(trace))
	hidden := graph.HiddenSet(graph.FamilyBlock(in.RootID)...)

	var order []string
	seen := make(map[string]bool, len(in.People))
	visible := make([]family.Person, 0, len(in.People))
	for _, p := range in.People {
		switch {
		case hidden[p.ID]:
			continue
		case seen[p.ID]:
			trace("duplicate person id, keeping first", "id", p.ID)
			continue
		}
		seen[p.ID] = true
		order = append(order, p.ID)
		visible = append(visible, p)
	}
	people := family.Index(visible)

	filled, added := family.FillPlaceholders(people, visibleMarriages(in.Marriages, hidden))
	order = append(order, added...)
	filledGraph := traverse.New(nil, filled)

	rootID := resolveRoot(in.RootID, order, filled, trace)
	working := filled
	if cfg.sortByGeneration {
		working = SortByGeneration(rootID, filled)
	}

	t := buildTree(order, working, rootID, trace)
	centers := newAssigner(t, ax, geo, trace).run()

	rootFamily := map[string]bool{rootID: true}
	if t.root != nil {
		for _, p := range t.root.Partners {
			rootFamily[p] = true
		}
	}

	res := &Result{
		Nodes: make([]RenderNode, 0, len(order)),
		Edges: []Edge{},
	}
	for _, id := range order {
		p := people[id]
		n := RenderNode{
			ID:     id,
			Type:   NodePerson,
			Width:  geo.NodeWidth,
			Height: geo.NodeHeight,
			Data: NodeData{
				Label:            p.DisplayName(),
				Lifespan:         lifespan(*p),
				Variant:          variant(p, t.nodes[id], rootFamily),
				Person:           p,
				HasChildren:      graph.HasChildren(id) || filledGraph.HasChildren(id),
				IsCollapsed:      p.IsCollapsed,
				Orientation:      orientation,
				OnToggleCollapse: in.Callbacks.OnToggleCollapse,
				OnOpenProfile:    in.Callbacks.OnOpenProfile,
			},
		}
		if c, ok := centers[id]; ok {
			x, y := ax.point(c.lat, c.gen)
			n.Position = Position{X: x - geo.NodeWidth/2, Y: y - geo.NodeHeight/2}
			n.IsPositioned = true
		} else {
			trace("person not positioned", "id", id)
		}
		res.Nodes = append(res.Nodes, n)
	}

	unions, edges := generateEdges(filled, centers, ax, geo, trace)
	res.Nodes = append(res.Nodes, unions...)
	res.Edges = append(res.Edges, edges...)
	return res, nil
}

func validate(in Input) error {
	if err := ferrors.ValidateID("root id", in.RootID); err != nil {
		return err
	}
	if in.Callbacks.OnToggleCollapse == nil {
		return ferrors.New(ferrors.ErrCodeInvalidArgument, "onToggleCollapse callback is required")
	}
	if in.Callbacks.OnOpenProfile == nil {
		return ferrors.New(ferrors.ErrCodeInvalidArgument, "onOpenProfile callback is required")
	}
	return ferrors.ValidateFamily(family.Family{People: in.People, Marriages: in.Marriages})
}

// visibleMarriages copies the marriages that keep at least one visible
// party, without their hidden children.
func visibleMarriages(ms []family.Marriage, hidden map[string]bool) []family.Marriage {
	out := make([]family.Marriage, 0, len(ms))
	for _, m := range ms {
		parties := m.Parties()
		if len(parties) > 0 && !slices.ContainsFunc(parties, func(id string) bool { return !hidden[id] }) {
			continue
		}
		c := m.Clone()
		isHidden := func(id string) bool { return hidden[id] }
		c.ChildrenIDs = slices.DeleteFunc(c.ChildrenIDs, isHidden)
		for i := range c.Wives {
			c.Wives[i].ChildrenIDs = slices.DeleteFunc(c.Wives[i].ChildrenIDs, isHidden)
		}
		out = append(out, c)
	}
	return out
}

// variant tags a person in precedence order: placeholder, dead, root
// family, spouse, direct line.
func variant(p *family.Person, n *treeNode, rootFamily map[string]bool) Variant {
	switch {
	case p.IsPlaceholder:
		return VariantPlaceholder
	case p.IsDead():
		return VariantDead
	case rootFamily[p.ID]:
		return VariantRoot
	case n != nil && n.IsSpouse:
		return VariantSpouse
	}
	return VariantDirectLine
}

func lifespan(p family.Person) string {
	switch {
	case p.DOB == "" && p.DOD == "":
		return ""
	case p.DOD == "":
		return p.DOB
	}
	return p.DOB + " - " + p.DOD
}
