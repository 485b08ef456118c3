// Package serialize converts documents to and from their persisted JSON form.
//
// The persisted form keeps block order, text, type and inline style ranges.
// Block keys are not persisted; Deserialize generates fresh ones. Offsets and
// lengths of style ranges count characters.
//
//	{
//	  "version": 1,
//	  "blocks": [
//	    {"text": "Hello", "type": "header-one",
//	     "inlineStyleRanges": [{"offset": 0, "length": 5, "style": "BOLD"}]}
//	  ]
//	}
//
// Payloads written by earlier editors carry no version and may include
// "key", "depth", "entityRanges", "data" and a top-level "entityMap". They are
// accepted as version 0; Migrate rewrites them to the current version.
//
// Round-trip law: document.Equivalent(Deserialize(Marshal(d)), d) holds for
// every document d.
package serialize
