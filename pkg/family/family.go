package family

import "slices"

// =============================================================================
// Person
// =============================================================================

// Gender is the binary gender used to infer placeholder spouses.
// The zero value means the gender is unknown.
type Gender string

// Known genders.
const (
	GenderUnknown Gender = ""
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// Opposite returns the opposite gender, or GenderUnknown if g is unknown.
func (g Gender) Opposite() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	default:
		return GenderUnknown
	}
}

// Person is a single individual in the family snapshot.
type Person struct {
	ID            string `json:"id" yaml:"id" bson:"id"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Gender        Gender `json:"gender,omitempty" yaml:"gender,omitempty" bson:"gender,omitempty"`
	DOB           string `json:"dob,omitempty" yaml:"dob,omitempty" bson:"dob,omitempty"`
	DOD           string `json:"dod,omitempty" yaml:"dod,omitempty" bson:"dod,omitempty"`
	IsPlaceholder bool   `json:"isPlaceholder,omitempty" yaml:"isPlaceholder,omitempty" bson:"is_placeholder,omitempty"`
	IsCollapsed   bool   `json:"isCollapsed,omitempty" yaml:"isCollapsed,omitempty" bson:"is_collapsed,omitempty"`
	Role          string `json:"role,omitempty" yaml:"role,omitempty" bson:"role,omitempty"`
}

// IsDead reports whether a death date is recorded.
func (p Person) IsDead() bool { return p.DOD != "" }

// DisplayName returns the name if set, otherwise the ID.
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// =============================================================================
// Marriage
// =============================================================================

// MarriageType discriminates the two marriage variants.
type MarriageType string

// Marriage variants.
const (
	Monogamous MarriageType = "monogamous"
	Polygamous MarriageType = "polygamous"
)

// Wife is one wife slot of a polygamous marriage together with her children.
type Wife struct {
	WifeID      string   `json:"wifeId" yaml:"wifeId" bson:"wife_id"`
	ChildrenIDs []string `json:"childrenIds,omitempty" yaml:"childrenIds,omitempty" bson:"children_ids,omitempty"`
}

// Marriage is a tagged variant: check Type to know which fields are populated.
//
//	Monogamous: Spouses, ChildrenIDs
//	Polygamous: HusbandID, Wives
type Marriage struct {
	ID   string       `json:"id" yaml:"id" bson:"id"`
	Type MarriageType `json:"marriageType" yaml:"marriageType" bson:"marriage_type"`

	// Monogamous
	Spouses     []string `json:"spouses,omitempty" yaml:"spouses,omitempty" bson:"spouses,omitempty"`
	ChildrenIDs []string `json:"childrenIds,omitempty" yaml:"childrenIds,omitempty" bson:"children_ids,omitempty"`

	// Polygamous
	HusbandID string `json:"husbandId,omitempty" yaml:"husbandId,omitempty" bson:"husband_id,omitempty"`
	Wives     []Wife `json:"wives,omitempty" yaml:"wives,omitempty" bson:"wives,omitempty"`
}

// IsPolygamous reports whether m is the polygamous variant.
func (m Marriage) IsPolygamous() bool { return m.Type == Polygamous }

// Parties returns every non-empty partner id in layout order:
// the two spouses, or the husband followed by each wife.
func (m Marriage) Parties() []string {
	var out []string
	if m.IsPolygamous() {
		if m.HusbandID != "" {
			out = append(out, m.HusbandID)
		}
		for _, w := range m.Wives {
			if w.WifeID != "" {
				out = append(out, w.WifeID)
			}
		}
		return out
	}
	for _, s := range m.Spouses {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasParty reports whether id is one of the marriage partners.
func (m Marriage) HasParty(id string) bool {
	return id != "" && slices.Contains(m.Parties(), id)
}

// Children returns the flattened child ids. For polygamous marriages this is
// the concatenation of every wife's children in wife order.
func (m Marriage) Children() []string {
	if !m.IsPolygamous() {
		return slices.Clone(m.ChildrenIDs)
	}
	var out []string
	for _, w := range m.Wives {
		out = append(out, w.ChildrenIDs...)
	}
	return out
}

// HasChild reports whether id is a child of this marriage.
func (m Marriage) HasChild(id string) bool {
	if !m.IsPolygamous() {
		return slices.Contains(m.ChildrenIDs, id)
	}
	return m.WifeOf(id) >= 0
}

// WifeOf returns the index of the wife whose children include childID,
// or -1 if none does.
func (m Marriage) WifeOf(childID string) int {
	for i, w := range m.Wives {
		if slices.Contains(w.ChildrenIDs, childID) {
			return i
		}
	}
	return -1
}

// Partners returns the partners of id within this marriage. For a
// polygamous wife this is the husband and every co-wife.
func (m Marriage) Partners(id string) []string {
	if !m.HasParty(id) {
		return nil
	}
	return slices.DeleteFunc(m.Parties(), func(p string) bool { return p == id })
}

// Clone returns a deep value copy of m.
func (m Marriage) Clone() Marriage {
	out := m
	out.Spouses = slices.Clone(m.Spouses)
	out.ChildrenIDs = slices.Clone(m.ChildrenIDs)
	if m.Wives != nil {
		out.Wives = make([]Wife, len(m.Wives))
		for i, w := range m.Wives {
			out.Wives[i] = Wife{WifeID: w.WifeID, ChildrenIDs: slices.Clone(w.ChildrenIDs)}
		}
	}
	return out
}

// CloneMarriages returns a deep value copy of ms.
func CloneMarriages(ms []Marriage) []Marriage {
	if ms == nil {
		return nil
	}
	out := make([]Marriage, len(ms))
	for i := range ms {
		out[i] = ms[i].Clone()
	}
	return out
}

// =============================================================================
// Family
// =============================================================================

// Family is a snapshot of people and marriages.
type Family struct {
	People    []Person   `json:"people" yaml:"people" bson:"people"`
	Marriages []Marriage `json:"marriages" yaml:"marriages" bson:"marriages"`
}

// Clone returns a deep copy of f.
func (f Family) Clone() Family {
	return Family{
		People:    slices.Clone(f.People),
		Marriages: CloneMarriages(f.Marriages),
	}
}

// Person returns the person with the given id.
func (f Family) Person(id string) (Person, bool) {
	for _, p := range f.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Index builds a mutable map of people keyed by id. Later duplicates win.
func Index(people []Person) map[string]*Person {
	out := make(map[string]*Person, len(people))
	for i := range people {
		p := people[i]
		out[p.ID] = &p
	}
	return out
}
