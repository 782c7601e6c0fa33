package pattern

import (
	"strconv"
	"strings"

	"github.com/ngcore/netgraph/ngerr"
)

// MaxExpansions is the hard cap (§4.1) on the number of strings any single
// expansion call (bracket or variable) may produce.
const MaxExpansions = 10000

// bracketToken describes one "[...]" occurrence and its resolved choices, in
// the order they appear in the source string.
type bracketToken struct {
	start, end int      // byte offsets of '[' and ']' (inclusive) in the source
	choices    []string // resolved literal replacements, in declaration order
}

// ExpandBrackets expands every "[a-b]" (inclusive integer range) and
// "[x,y,z]" (explicit list, list entries may themselves be ranges) token in
// name, producing the cartesian product of all bracket choices in
// left-to-right order. A name with no bracket tokens expands to itself.
//
// Complexity: O(result count * len(name)).
func ExpandBrackets(name string) ([]string, error) {
	tokens, err := findBracketTokens(name)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return []string{name}, nil
	}

	total := 1
	for _, tok := range tokens {
		total *= len(tok.choices)
		if total > MaxExpansions {
			return nil, &ngerr.ExpansionError{Template: name, Msg: "bracket expansion cap exceeded"}
		}
	}

	results := make([]string, 0, total)
	combos := cartesianIndices(tokens)
	for _, combo := range combos {
		results = append(results, renderBrackets(name, tokens, combo))
	}
	return results, nil
}

// IsIdempotent reports whether name has no remaining bracket syntax — i.e.
// re-expanding it would return []string{name} unchanged (testable property
// #8, bracket expansion idempotence).
func IsIdempotent(name string) bool {
	tokens, err := findBracketTokens(name)
	return err == nil && len(tokens) == 0
}

func findBracketTokens(name string) ([]bracketToken, error) {
	var tokens []bracketToken
	i := 0
	for i < len(name) {
		if name[i] != '[' {
			i++
			continue
		}
		closeIdx := strings.IndexByte(name[i:], ']')
		if closeIdx < 0 {
			return nil, &ngerr.ExpansionError{Template: name, Msg: "unterminated bracket token"}
		}
		closeIdx += i
		body := name[i+1 : closeIdx]
		choices, err := resolveBracketBody(body)
		if err != nil {
			return nil, &ngerr.ExpansionError{Template: name, Msg: err.Error()}
		}
		tokens = append(tokens, bracketToken{start: i, end: closeIdx, choices: choices})
		i = closeIdx + 1
	}
	return tokens, nil
}

// resolveBracketBody resolves the content of one bracket pair into its
// ordered list of literal replacements. The body is a comma-separated list
// of entries; each entry is either a literal token or an "a-b" integer
// range (itself expanded into consecutive integers, ascending or descending
// to match a>b).
func resolveBracketBody(body string) ([]string, error) {
	var out []string
	for _, entry := range strings.Split(body, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, errEmptyBracketEntry
		}
		if lo, hi, ok := parseIntRange(entry); ok {
			if hi >= lo {
				for v := lo; v <= hi; v++ {
					out = append(out, strconv.Itoa(v))
				}
			} else {
				for v := lo; v >= hi; v-- {
					out = append(out, strconv.Itoa(v))
				}
			}
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

var errEmptyBracketEntry = bracketErr("empty bracket entry")

type bracketErr string

func (e bracketErr) Error() string { return string(e) }

// parseIntRange parses "a-b" where a and b are (optionally negative)
// integers. It returns ok=false for anything else, including a plain
// literal that happens to contain a hyphen that is not a valid range.
func parseIntRange(entry string) (lo, hi int, ok bool) {
	// Search for a '-' that is not the leading sign of the first number.
	searchFrom := 0
	if strings.HasPrefix(entry, "-") {
		searchFrom = 1
	}
	dashIdx := strings.IndexByte(entry[searchFrom:], '-')
	if dashIdx < 0 {
		return 0, 0, false
	}
	dashIdx += searchFrom

	loStr := entry[:dashIdx]
	hiStr := entry[dashIdx+1:]
	loVal, errLo := strconv.Atoi(loStr)
	hiVal, errHi := strconv.Atoi(hiStr)
	if errLo != nil || errHi != nil {
		return 0, 0, false
	}
	return loVal, hiVal, true
}

// cartesianIndices enumerates every combination of choice-indices across
// tokens in left-to-right cartesian order: the first bracket is the outer
// loop and the last bracket varies fastest. Returned as a slice of
// index-combinations.
func cartesianIndices(tokens []bracketToken) [][]int {
	n := len(tokens)
	counts := make([]int, n)
	for i, tok := range tokens {
		counts[i] = len(tok.choices)
	}
	total := 1
	for _, c := range counts {
		total *= c
	}
	combos := make([][]int, 0, total)
	idx := make([]int, n)
	for {
		combo := make([]int, n)
		copy(combo, idx)
		combos = append(combos, combo)

		// Increment rightmost index first so the leftmost bracket is the
		// slowest-varying (outer) loop, matching left-to-right cartesian order.
		pos := n - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < counts[pos] {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return combos
}

func renderBrackets(name string, tokens []bracketToken, combo []int) string {
	var b strings.Builder
	prev := 0
	for i, tok := range tokens {
		b.WriteString(name[prev:tok.start])
		b.WriteString(tok.choices[combo[i]])
		prev = tok.end + 1
	}
	b.WriteString(name[prev:])
	return b.String()
}
