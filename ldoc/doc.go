// Package ldoc processes linked-data documents layered on a generic tree
// data model (objects, ordered arrays, scalars, and null).
//
// Three operations are exposed:
//   - Parse decodes bytes into the generic tree.
//   - Expand rewrites a tree node into canonical expanded form: every term
//     resolved to an absolute IRI, every value a literal-object or an
//     identifier-object, every property value an ordered array.
//   - Compact rewrites an expanded node back into its shortest term-based
//     form using a supplied context.
//
// ProcessContext folds a local context into an active context used by
// Expand and Compact; Expand invokes it automatically whenever a node
// carries an embedded "@context".
//
// Example (expand then compact):
//
//	active, err := ldoc.ProcessContext(ldoc.NewObject().
//	    Set("name", ldoc.String("http://schema.org/name")), ldoc.ActiveContext{})
//	if err != nil {
//	    // handle error
//	}
//	expanded, err := ldoc.Expand(input, active, "")
//	if err != nil {
//	    // handle error
//	}
//	compact, err := ldoc.Compact(expanded, active, "", false)
//
// The textual decoder (Parse), expansion, and compaction are pure
// transformations: the same input and active context always produce the
// same output, and a single active context must not be mutated by one
// goroutine while another reads it.
package ldoc
