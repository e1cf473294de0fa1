// Package io reads and writes family snapshots and layout results.
//
// # Snapshot Format
//
// A snapshot has two top-level arrays, in JSON or YAML:
//
//	{
//	  "people": [
//	    {"id": "p1", "name": "Anna", "gender": "female", "dob": "1950"},
//	    {"id": "p2", "name": "Ben", "gender": "male"}
//	  ],
//	  "marriages": [
//	    {"id": "m1", "marriageType": "monogamous",
//	     "spouses": ["p1", "p2"], "childrenIds": ["p3"]},
//	    {"id": "m2", "marriageType": "polygamous", "husbandId": "p2",
//	     "wives": [{"wifeId": "p4", "childrenIds": ["p5"]}]}
//	  ]
//	}
//
// The format is picked from the file extension: .json, .yaml or .yml.
//
// # Missing Identifiers
//
// Records exported from spreadsheets often lack ids. [ReadFamily] assigns
// each such record a name-based (SHA-1, version 5) UUID derived from its
// position and contents, so the same file always yields the same ids and
// cached layouts stay valid across runs.
//
// A marriage without a marriageType is inferred from its fields: a husband
// or wives make it polygamous, anything else monogamous.
//
// # Layout Export
//
// [WriteLayout] encodes a [layout.Result] as the JSON consumed by
// node-graph frontends; [ReadLayout] decodes it again. Node callbacks are
// not serialized.
package io
