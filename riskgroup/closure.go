package riskgroup

// ExpandSharedGroups BFS-expands seed (a set of failed entities) by the
// "shares a risk group with" relation (§4.10 step 3, expand_groups): any
// entity that is a direct member of a group some seed entity also belongs
// to is added, and the frontier repeats until it stops growing. This is
// testable property #10 (risk expansion closure): the returned set is
// closed under "shares a risk group with".
//
// Grounded on lvlath/bfs's level-order frontier walk (bfs/bfs.go),
// generalized from graph adjacency to group-membership adjacency.
func ExpandSharedGroups(t *Tree, seed map[EntityRef]bool) map[EntityRef]bool {
	closed := make(map[EntityRef]bool, len(seed))
	for e := range seed {
		closed[e] = true
	}
	frontier := make([]EntityRef, 0, len(seed))
	for e := range seed {
		frontier = append(frontier, e)
	}

	for len(frontier) > 0 {
		var next []EntityRef
		for _, e := range frontier {
			for _, group := range t.GroupsOf(e) {
				for _, other := range t.Members(group) {
					if closed[other] {
						continue
					}
					closed[other] = true
					next = append(next, other)
				}
			}
		}
		frontier = next
	}
	return closed
}

// ExpandChildGroups closure-expands a set of failed group names by the
// "descendant of" relation (§4.10 step 3, expand_children): every
// descendant of a failed group is added to the failed-group set. Testable
// property #10's second clause.
func ExpandChildGroups(t *Tree, seedGroups map[string]bool) map[string]bool {
	closed := make(map[string]bool, len(seedGroups))
	for g := range seedGroups {
		closed[g] = true
	}
	for g := range seedGroups {
		for _, d := range t.Descendants(g) {
			closed[d] = true
		}
	}
	return closed
}

// MembersOfGroups unions the direct members of every group in groups.
func MembersOfGroups(t *Tree, groups map[string]bool) map[EntityRef]bool {
	out := map[EntityRef]bool{}
	for g := range groups {
		for _, m := range t.Members(g) {
			out[m] = true
		}
	}
	return out
}
