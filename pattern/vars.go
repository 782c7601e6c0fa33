package pattern

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ngcore/netgraph/ngerr"
)

// Mode selects how multiple variable-bound lists combine (§4.1).
type Mode int

const (
	// Cartesian produces every combination of the bound lists.
	Cartesian Mode = iota
	// Zip requires all bound lists to share one length and combines by index.
	Zip
)

var varRefPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandVars substitutes every "$name"/"${name}" reference in template
// against vars (name -> bound list of strings), combining multiple
// variables per mode. Cartesian mode produces every combination;
// Zip mode requires all referenced lists to share one length and combines
// element-wise. The result is capped at MaxExpansions.
//
// An unresolved "${var}" (not present in vars) is an ExpansionError, as is
// an unequal-length zip.
func ExpandVars(template string, vars map[string][]string, mode Mode) ([]string, error) {
	names := referencedVars(template)
	if len(names) == 0 {
		return []string{template}, nil
	}

	for _, name := range names {
		if _, ok := vars[name]; !ok {
			return nil, &ngerr.ExpansionError{Template: template, Msg: "unresolved variable ${" + name + "}"}
		}
	}

	switch mode {
	case Zip:
		return expandZip(template, names, vars)
	default:
		return expandCartesian(template, names, vars)
	}
}

func referencedVars(template string) []string {
	matches := varRefPattern.FindAllStringSubmatch(template, -1)
	seen := map[string]bool{}
	var names []string
	for _, m := range matches {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func expandCartesian(template string, names []string, vars map[string][]string) ([]string, error) {
	total := 1
	for _, name := range names {
		total *= len(vars[name])
		if total > MaxExpansions {
			return nil, &ngerr.ExpansionError{Template: template, Msg: "variable expansion cap exceeded"}
		}
	}
	if total == 0 {
		return nil, nil
	}

	combos := make([][]string, 1)
	combos[0] = []string{}
	for _, name := range names {
		list := vars[name]
		next := make([][]string, 0, len(combos)*len(list))
		for _, combo := range combos {
			for _, val := range list {
				extended := make([]string, len(combo), len(combo)+1)
				copy(extended, combo)
				extended = append(extended, val)
				next = append(next, extended)
			}
		}
		combos = next
	}

	out := make([]string, 0, len(combos))
	for _, combo := range combos {
		bindings := make(map[string]string, len(names))
		for i, name := range names {
			bindings[name] = combo[i]
		}
		out = append(out, substitute(template, bindings))
	}
	return out, nil
}

func expandZip(template string, names []string, vars map[string][]string) ([]string, error) {
	length := -1
	for _, name := range names {
		l := len(vars[name])
		if length < 0 {
			length = l
		} else if l != length {
			return nil, &ngerr.ExpansionError{Template: template, Msg: "zip mode requires equal-length variable lists"}
		}
	}
	if length > MaxExpansions {
		return nil, &ngerr.ExpansionError{Template: template, Msg: "variable expansion cap exceeded"}
	}

	out := make([]string, 0, length)
	for i := 0; i < length; i++ {
		bindings := make(map[string]string, len(names))
		for _, name := range names {
			bindings[name] = vars[name][i]
		}
		out = append(out, substitute(template, bindings))
	}
	return out, nil
}

func substitute(template string, bindings map[string]string) string {
	return varRefPattern.ReplaceAllStringFunc(template, func(ref string) string {
		sub := varRefPattern.FindStringSubmatch(ref)
		name := sub[1]
		if name == "" {
			name = sub[2]
		}
		return bindings[name]
	})
}

// SortedVarNames returns the variable names bound in vars in deterministic
// (lexicographic) order; useful for stable iteration/logging.
func SortedVarNames(vars map[string][]string) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasVarRefs reports whether s contains a '$' character (the start of any
// $name/${name} reference), distinguishing the variable-substitution context from contexts where
// brackets/placeholders apply instead (§4.1: "not interchangeable").
func HasVarRefs(s string) bool {
	return strings.ContainsRune(s, '$')
}

// ExpandBindings computes the combinations of vars per mode (cartesian or
// zip), returning each combination as a name->value binding rather than
// rendering any particular template against it. This backs adjacency
// `expand` blocks (§4.5 "may also carry an expand block that first
// multiplies the adjacency record itself over variable bindings before
// selection"), where several fields of one record must share the same
// binding rather than being expanded independently.
func ExpandBindings(vars map[string][]string, mode Mode) ([]map[string]string, error) {
	names := SortedVarNames(vars)
	if len(names) == 0 {
		return []map[string]string{{}}, nil
	}

	switch mode {
	case Zip:
		length := -1
		for _, name := range names {
			l := len(vars[name])
			if length < 0 {
				length = l
			} else if l != length {
				return nil, ngerrExpansion("expand block", "zip mode requires equal-length variable lists")
			}
		}
		if length > MaxExpansions {
			return nil, ngerrExpansion("expand block", "variable expansion cap exceeded")
		}
		out := make([]map[string]string, 0, length)
		for i := 0; i < length; i++ {
			b := make(map[string]string, len(names))
			for _, name := range names {
				b[name] = vars[name][i]
			}
			out = append(out, b)
		}
		return out, nil
	default:
		total := 1
		for _, name := range names {
			total *= len(vars[name])
			if total > MaxExpansions {
				return nil, ngerrExpansion("expand block", "variable expansion cap exceeded")
			}
		}
		if total == 0 {
			return nil, nil
		}
		combos := []map[string]string{{}}
		for _, name := range names {
			list := vars[name]
			next := make([]map[string]string, 0, len(combos)*len(list))
			for _, combo := range combos {
				for _, val := range list {
					extended := make(map[string]string, len(combo)+1)
					for k, v := range combo {
						extended[k] = v
					}
					extended[name] = val
					next = append(next, extended)
				}
			}
			combos = next
		}
		return combos, nil
	}
}

// Substitute renders template against a single resolved binding, exported
// for callers (blueprint's adjacency expand block) that compute bindings
// via ExpandBindings rather than ExpandVars.
func Substitute(template string, bindings map[string]string) string {
	return substitute(template, bindings)
}

func ngerrExpansion(template, msg string) *ngerr.ExpansionError {
	return &ngerr.ExpansionError{Template: template, Msg: msg}
}
