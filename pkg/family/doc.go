// Package family defines the genealogical data model consumed by the layout
// engine and the traversal utilities.
//
// # Overview
//
// A [Family] is a flat snapshot of [Person] and [Marriage] records. Marriages
// come in two variants, discriminated by [Marriage.Type]:
//
//	Monogamous ("monogamous"):
//	  - Spouses: exactly two person ids, either may be "" (unknown)
//	  - ChildrenIDs: ordered children of the couple
//
//	Polygamous ("polygamous"):
//	  - HusbandID: may be "" (unknown)
//	  - Wives: ordered {WifeID, ChildrenIDs}; WifeID may be ""
//
// Unknown parties are completed with synthetic placeholder persons by
// [FillPlaceholders] before layout. Placeholder ids, union node ids and edge
// ids are deterministic functions of the records they derive from, so the
// same snapshot always produces the same identifiers.
//
// # Copy Semantics
//
// The engine never mutates caller-owned marriages. [CloneMarriages] returns
// an explicit value copy, including every children slice.
package family
