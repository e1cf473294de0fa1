package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/pipeline"
	"github.com/matzehuels/familytower/pkg/traverse"
)

func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags layoutFlags
		save  bool
	)
	cmd := &cobra.Command{
		Use:   "browse [family.yaml]",
		Short: "Browse a family interactively",
		Long: `Browse the laid-out family in the terminal, one row per person ordered by
generation. Collapse and expand branches, open a person's profile and
lineage, or re-root the diagram. With --save, changed collapse flags are
written back on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.sourceOptions(args)
			if err != nil {
				return err
			}
			flags.apply(&opts)
			return c.runBrowse(cmd.Context(), opts, flags.noCache, save)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "write changed collapse flags back on exit")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, noCache, save bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.resolveRoot(ctx, runner, &opts); err != nil {
		return err
	}
	f, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	m := newBrowseModel(f, opts.RootID, func(f family.Family, root string, cb layout.Callbacks) (*layout.Result, error) {
		o := opts
		o.RootID = root
		o.Scope = false
		o.Callbacks = cb
		return runner.Layout(ctx, f, o)
	})
	if m.err != nil {
		return m.err
	}

	if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	if m.dirty {
		if !save {
			printWarning("Collapse flags changed; rerun with --save to keep them")
			return nil
		}
		if err := c.saveFamily(ctx, runner, opts, m.fam, ""); err != nil {
			return err
		}
		printSuccess("Saved collapse flags to %s", sourceName(opts))
	}
	return nil
}

// =============================================================================
// browseModel
// =============================================================================

// layoutFunc lays out f around root with person nodes bound to cb.
type layoutFunc func(f family.Family, root string, cb layout.Callbacks) (*layout.Result, error)

// browseRow is one person in the list. Persons hidden by their own
// collapse flag get a row without a node so they can be expanded again.
type browseRow struct {
	id     string
	person family.Person
	node   *layout.RenderNode
}

// browseModel is the bubbletea model of the browse command. Its methods
// use pointer receivers: the layout callbacks bound to every node close
// over the model and mutate it.
type browseModel struct {
	fam      family.Family
	root     string
	layoutFn layoutFunc
	cb       layout.Callbacks

	res     *layout.Result
	rows    []browseRow
	cursor  int
	offset  int
	height  int
	profile string
	lineage traverse.Highlight
	dirty   bool
	err     error
}

func newBrowseModel(f family.Family, root string, fn layoutFunc) *browseModel {
	m := &browseModel{
		fam:      f.Clone(),
		root:     root,
		layoutFn: fn,
		height:   15,
	}
	m.cb = layout.Callbacks{
		OnToggleCollapse: m.toggleCollapse,
		OnOpenProfile:    m.openProfile,
	}
	m.relayout()
	return m
}

// toggleCollapse flips the collapsed flag of id and lays out again.
func (m *browseModel) toggleCollapse(id string) {
	for i := range m.fam.People {
		if m.fam.People[i].ID == id {
			m.fam.People[i].IsCollapsed = !m.fam.People[i].IsCollapsed
			m.dirty = true
			m.relayout()
			return
		}
	}
}

// openProfile selects id for the profile panel and traces its lineage.
func (m *browseModel) openProfile(id string) {
	m.profile = id
	m.lineage = traverse.New(m.fam.People, m.fam.Marriages).Lineage(id)
}

func (m *browseModel) relayout() {
	current := m.selectedID()
	res, err := m.layoutFn(m.fam, m.root, m.cb)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.res = res
	m.rows = buildRows(res, m.fam)
	m.selectID(current)
}

// buildRows orders positioned persons by generation, then laterally, and
// appends collapsed persons missing from the layout.
func buildRows(res *layout.Result, f family.Family) []browseRow {
	var rows []browseRow
	seen := make(map[string]bool)
	for i := range res.Nodes {
		n := &res.Nodes[i]
		if n.Type != layout.NodePerson || !n.IsPositioned {
			continue
		}
		p := family.Person{ID: n.ID, Name: n.Data.Label}
		if n.Data.Person != nil {
			p = *n.Data.Person
		}
		rows = append(rows, browseRow{id: n.ID, person: p, node: n})
		seen[n.ID] = true
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].node, rows[j].node
		ga, la := a.Position.Y, a.Position.X
		gb, lb := b.Position.Y, b.Position.X
		if a.Data.Orientation == layout.Horizontal {
			ga, la, gb, lb = la, ga, lb, gb
		}
		if ga != gb {
			return ga < gb
		}
		return la < lb
	})
	for _, p := range f.People {
		if p.IsCollapsed && !seen[p.ID] {
			rows = append(rows, browseRow{id: p.ID, person: p})
		}
	}
	return rows
}

func (m *browseModel) selectedID() string {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].id
	}
	return ""
}

func (m *browseModel) selectID(id string) {
	for i, r := range m.rows {
		if r.id == id {
			m.cursor = i
			m.scroll()
			return
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// toggle and open go through the callbacks bound to the node, the way any
// renderer of a layout result would.
func (m *browseModel) toggle() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if r.node != nil {
		r.node.Data.OnToggleCollapse(r.id)
		return
	}
	m.cb.OnToggleCollapse(r.id)
}

func (m *browseModel) open() {
	if m.cursor >= len(m.rows) {
		return
	}
	r := m.rows[m.cursor]
	if r.node != nil {
		r.node.Data.OnOpenProfile(r.id)
		return
	}
	m.cb.OnOpenProfile(r.id)
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.profile != "" {
				m.profile = ""
				m.lineage = traverse.Highlight{}
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.scroll()
			}
		case " ", "space", "c":
			m.toggle()
		case "enter", "p":
			m.open()
		case "r":
			if id := m.selectedID(); id != "" && m.rows[m.cursor].node != nil {
				m.root = id
				m.relayout()
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-14, 5)
		m.scroll()
	}
	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Family of " + m.rootName()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  c collapse  ⏎ profile  r re-root  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}

	end := min(m.offset+m.height, len(m.rows))
	var rows [][]string
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.rowCells(i))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Life", "Role", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			r := m.rows[idx]
			if r.node == nil {
				return StyleDim
			}
			s := variantStyle(r.node.Data.Variant)
			if idx == m.cursor {
				s = s.Bold(true).Underline(col == 1)
			}
			return s
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.rows)), len(m.rows))))
	if m.res != nil {
		b.WriteString("  " + statsLine(m.res.PersonCount(), len(m.res.Nodes), len(m.res.Edges), false))
	}
	b.WriteString("\n")

	if m.profile != "" {
		b.WriteString("\n")
		b.WriteString(m.profileView())
	}
	return b.String()
}

func (m *browseModel) rowCells(i int) []string {
	r := m.rows[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}
	if m.profile != "" && m.lineage.Contains(r.id) {
		cursor = strings.TrimSpace(cursor) + "◆"
	}

	life, role, toggle := "", "hidden", "[+]"
	if r.node != nil {
		life = r.node.Data.Lifespan
		role = string(r.node.Data.Variant)
		toggle = ""
		if r.node.Data.HasChildren {
			toggle = "[-]"
		}
	}
	return []string{cursor, r.person.DisplayName(), life, role, toggle}
}

func (m *browseModel) rootName() string {
	for _, p := range m.fam.People {
		if p.ID == m.root {
			return p.DisplayName()
		}
	}
	return m.root
}

func (m *browseModel) profileView() string {
	var p family.Person
	for _, q := range m.fam.People {
		if q.ID == m.profile {
			p = q
		}
	}
	g := traverse.New(m.fam.People, m.fam.Marriages)

	var lines []string
	lines = append(lines, StyleTitle.Render(p.DisplayName())+" "+StyleDim.Render(p.ID))
	kv := func(k, v string) {
		if v != "" {
			lines = append(lines, StyleDim.Render(fmt.Sprintf("%-10s", k))+" "+StyleValue.Render(v))
		}
	}
	kv("gender", string(p.Gender))
	kv("born", p.DOB)
	kv("died", p.DOD)
	kv("partners", strings.Join(g.Partners(p.ID), ", "))
	kv("ancestor", g.HighestAncestor(p.ID))
	kv("lineage", fmt.Sprintf("%d nodes, %d edges", len(m.lineage.Nodes), len(m.lineage.Edges)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
