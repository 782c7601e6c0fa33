// Package attrval implements the recursive tagged-value type that backs every
// attribute bag in NetGraph (node attrs, link attrs, demand attrs, condition
// values). Nodes and links carry an open-ended mapping from string to
// arbitrary scalar/compound data; selectors and failure rules need to read a
// dot-path into that mapping ("x.y.z") without knowing its shape ahead of
// time.
//
// Value is the tagged union: Null, Bool, Number, String, List, Map. FromAny
// builds a Value from anything decoded out of YAML (map[string]any,
// []any, scalars) via gopkg.in/yaml.v3's generic interface{} model, which is
// exactly how github.com/randalmurphal/flowgraph's config loader turns a
// parsed document into a generic map[string]any before further typing.
package attrval
