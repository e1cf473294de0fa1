package traverse_test

import (
	"fmt"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/traverse"
)

func ExampleGraph_Lineage() {
	people := []family.Person{{ID: "dad"}, {ID: "mom"}, {ID: "kid"}}
	marriages := []family.Marriage{{
		ID:          "m1",
		Type:        family.Monogamous,
		Spouses:     []string{"dad", "mom"},
		ChildrenIDs: []string{"kid"},
	}}

	h := traverse.New(people, marriages).Lineage("kid")
	fmt.Println(h.Nodes)
	for _, e := range h.Edges {
		fmt.Println(e)
	}
	// Output:
	// [kid dad mom union-m1]
	// monogamous:m1:dad->union-m1
	// monogamous:m1:mom->union-m1
	// parentChild:m1:union-m1->kid
}

func ExampleGraph_HighestAncestor() {
	people := []family.Person{{ID: "grandpa"}, {ID: "dad"}, {ID: "kid"}}
	marriages := []family.Marriage{
		{ID: "m1", Type: family.Monogamous, Spouses: []string{"grandpa", ""}, ChildrenIDs: []string{"dad"}},
		{ID: "m2", Type: family.Monogamous, Spouses: []string{"dad", ""}, ChildrenIDs: []string{"kid"}},
	}
	fmt.Println(traverse.New(people, marriages).HighestAncestor("kid"))
	// Output: grandpa
}
