package selector

import "github.com/ngcore/netgraph/attrval"

func equalValues(a, b attrval.Value) bool {
	return attrval.Equal(a, b)
}

func compareOp(a, b attrval.Value, op Op) bool {
	cmp, err := attrval.Compare(a, b)
	if err != nil {
		return false
	}
	switch op {
	case OpLT:
		return cmp < 0
	case OpLE:
		return cmp <= 0
	case OpGT:
		return cmp > 0
	case OpGE:
		return cmp >= 0
	default:
		return false
	}
}

func containsValue(container, elem attrval.Value) bool {
	return attrval.Contains(container, elem)
}
