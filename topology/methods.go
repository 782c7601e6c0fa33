package topology

import "regexp"

// FindLinks is the §4.3 convenience query for post-build rules: every link
// whose Source matches srcRegex and Target matches dstRegex. If
// bidirectional is true, a link matching the swapped direction (Target
// matches srcRegex, Source matches dstRegex) is also included.
//
// Complexity: O(E).
func (s *Store) FindLinks(srcRegex, dstRegex *regexp.Regexp, bidirectional bool) []*Link {
	var out []*Link
	for _, id := range s.linkOrder {
		l := s.links[id]
		if srcRegex.MatchString(l.Source) && dstRegex.MatchString(l.Target) {
			out = append(out, l)
			continue
		}
		if bidirectional && srcRegex.MatchString(l.Target) && dstRegex.MatchString(l.Source) {
			out = append(out, l)
		}
	}
	return out
}

// NodeStats summarizes one node's connectivity for the NetworkStats
// workflow step (SPEC_FULL.md §C).
type NodeStats struct {
	Name        string
	InDegree    int
	OutDegree   int
	InCapacity  float64
	OutCapacity float64
}

// Stats computes the NetworkStats workflow step's payload: node/link
// counts and, per node, in/out degree and in/out capacity (§4.12).
//
// Complexity: O(V + E).
func (s *Store) Stats() (nodeCount, linkCount int, perNode map[string]NodeStats) {
	perNode = make(map[string]NodeStats, len(s.nodeOrder))
	for _, name := range s.nodeOrder {
		perNode[name] = NodeStats{Name: name}
	}
	for _, id := range s.linkOrder {
		l := s.links[id]
		src := perNode[l.Source]
		src.OutDegree++
		src.OutCapacity += l.Capacity
		perNode[l.Source] = src

		dst := perNode[l.Target]
		dst.InDegree++
		dst.InCapacity += l.Capacity
		perNode[l.Target] = dst
	}
	return len(s.nodeOrder), len(s.linkOrder), perNode
}
