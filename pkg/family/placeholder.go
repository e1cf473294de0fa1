package family

// FillPlaceholders completes every unknown marriage party with a synthetic
// placeholder person.
//
// The returned marriages are a value copy of ms with every empty identity
// slot replaced by a placeholder id; ms itself is never modified. people is
// extended in place with the synthesized persons, and the ids of persons
// newly added are returned in synthesis order. Placeholders already present
// in people are reused, which makes the operation idempotent.
//
// Gender inference:
//   - monogamous: opposite of the known spouse, unknown if that is unset
//   - polygamous husband: opposite of the first wife, male by default
//   - polygamous wife: opposite of the husband, female by default
func FillPlaceholders(people map[string]*Person, ms []Marriage) ([]Marriage, []string) {
	out := CloneMarriages(ms)
	var added []string

	ensure := func(id string, g Gender) {
		if _, ok := people[id]; ok {
			return
		}
		people[id] = &Person{ID: id, Name: "Unknown", Gender: g, IsPlaceholder: true}
		added = append(added, id)
	}
	genderOf := func(id string) Gender {
		if p, ok := people[id]; ok && id != "" {
			return p.Gender
		}
		return GenderUnknown
	}

	for i := range out {
		m := &out[i]
		if m.IsPolygamous() {
			if m.HusbandID == "" {
				g := GenderMale
				if len(m.Wives) > 0 {
					if wg := genderOf(m.Wives[0].WifeID).Opposite(); wg != GenderUnknown {
						g = wg
					}
				}
				m.HusbandID = HusbandPlaceholderID(m.ID)
				ensure(m.HusbandID, g)
			}
			for j := range m.Wives {
				if m.Wives[j].WifeID != "" {
					continue
				}
				g := genderOf(m.HusbandID).Opposite()
				if g == GenderUnknown {
					g = GenderFemale
				}
				m.Wives[j].WifeID = WifePlaceholderID(m.ID, j)
				ensure(m.Wives[j].WifeID, g)
			}
			continue
		}

		for len(m.Spouses) < 2 {
			m.Spouses = append(m.Spouses, "")
		}
		resolved := m.ResolvedSpouses()
		for j, s := range m.Spouses {
			if s != "" {
				continue
			}
			var known string
			for k, other := range m.Spouses {
				if k != j && other != "" {
					known = other
					break
				}
			}
			m.Spouses[j] = resolved[j]
			ensure(resolved[j], genderOf(known).Opposite())
		}
	}
	return out, added
}
