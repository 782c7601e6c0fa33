package attrval

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromAny converts a plain Go value produced by a generic decoder
// (map[string]interface{}, []interface{}, scalars — exactly the shape
// gopkg.in/yaml.v3 hands back from Unmarshal into an `any`) into a Value
// tree. This is the one place NetGraph's core touches a serialization
// format; §6 places the scenario document's textual syntax itself outside
// the core, but the core still needs a typed representation of whatever
// tree the external parser produced.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float64:
		return Number(t)
	case []any:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = FromAny(item)
		}
		return List(out...)
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, item := range t {
			out[k] = FromAny(item)
		}
		return Map(out)
	case map[any]any:
		out := make(map[string]Value, len(t))
		for k, item := range t {
			out[fmt.Sprintf("%v", k)] = FromAny(item)
		}
		return Map(out)
	default:
		return String(fmt.Sprintf("%v", t))
	}
}

// FromYAML decodes a YAML document's attribute section into a Value tree.
// It is a thin convenience over gopkg.in/yaml.v3 + FromAny, used by the
// scenario package and by tests that need fixture attribute bags without
// constructing Value literals by hand.
func FromYAML(data []byte) (Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Null(), fmt.Errorf("attrval: parse yaml: %w", err)
	}
	return FromAny(raw), nil
}

// ToAny converts a Value back into a plain Go value tree (map[string]any,
// []any, scalars) suitable for the external result-JSON encoder described in
// §6 — the core never encodes JSON itself, it only hands back a structurally
// ready tree.
func ToAny(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindNumber:
		n, _ := v.AsNumber()
		return n
	case KindString:
		s, _ := v.AsString()
		return s
	case KindList:
		list, _ := v.AsList()
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = ToAny(item)
		}
		return out
	case KindMap:
		m, _ := v.AsMap()
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = ToAny(item)
		}
		return out
	default:
		return nil
	}
}
