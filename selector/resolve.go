package selector

import (
	"regexp"
	"sort"
	"strings"
)

// compileAnchored compiles pattern as a start-anchored regex ("path: regex
// anchored at start", §4.2). If pattern is not already anchored with "^" it
// is prefixed with one.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	return regexp.Compile(pattern)
}

// Resolve resolves sel against the ordered entity universe, returning
// deterministically ordered groups (lexicographic by group key, then by
// entity name within a group). An empty match is not an error (§4.2 "Empty
// match is not an error"): it yields an empty slice.
//
// Complexity: O(n * (regex cost + len(conditions))).
func Resolve(universe []Entity, sel Selector) []Group {
	matched := make([]Entity, 0, len(universe))
	captures := make(map[string][]string) // entity name -> capture groups, when CaptureGrouping

	for _, e := range universe {
		if sel.ActiveOnly && !e.Active {
			continue
		}
		var capture []string
		if sel.Path != nil {
			m := sel.Path.FindStringSubmatch(e.Name)
			if m == nil {
				continue
			}
			if len(m) > 1 {
				capture = m[1:]
			}
		}
		if sel.Match != nil && !evaluateMatch(e, *sel.Match) {
			continue
		}
		matched = append(matched, e)
		if capture != nil {
			captures[e.Name] = capture
		}
	}

	groups := map[string][]Entity{}
	for _, e := range matched {
		key := groupKey(e, sel, captures[e.Name])
		groups[key] = append(groups[key], e)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		entities := groups[k]
		sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })
		out = append(out, Group{Key: k, Entities: entities})
	}
	return out
}

// groupKey computes the partition key for one matched entity: GroupBy's
// attribute value if set, else (for path-based selectors) the joined
// capture groups, else a single shared key so all matches form one group.
func groupKey(e Entity, sel Selector, capture []string) string {
	if sel.GroupBy != "" {
		v, ok := e.Attrs.Get(sel.GroupBy)
		if !ok {
			return ""
		}
		return v.String()
	}
	if sel.CaptureGrouping && len(capture) > 0 {
		return strings.Join(capture, "|")
	}
	return "*"
}

func evaluateMatch(e Entity, m Match) bool {
	if len(m.Conditions) == 0 {
		return true
	}
	results := make([]bool, len(m.Conditions))
	for i, c := range m.Conditions {
		results[i] = evaluateCondition(e, c)
	}
	if m.Logic == LogicAnd {
		for _, r := range results {
			if !r {
				return false
			}
		}
		return true
	}
	for _, r := range results {
		if r {
			return true
		}
	}
	return false
}

func evaluateCondition(e Entity, c Condition) bool {
	val, exists := e.Attrs.Get(c.Attr)
	switch c.Op {
	case OpExists:
		return exists
	case OpNotExists:
		return !exists
	}
	if !exists {
		return false
	}
	switch c.Op {
	case OpEQ:
		return equalValues(val, c.Value)
	case OpNE:
		return !equalValues(val, c.Value)
	case OpLT, OpLE, OpGT, OpGE:
		return compareOp(val, c.Value, c.Op)
	case OpContains:
		return containsValue(val, c.Value)
	case OpNotContains:
		return !containsValue(val, c.Value)
	case OpIn:
		return containsValue(c.Value, val)
	case OpNotIn:
		return !containsValue(c.Value, val)
	default:
		return false
	}
}
