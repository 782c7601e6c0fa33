package workflow

import (
	"strconv"
	"strings"

	"github.com/ngcore/netgraph/ngerr"
)

// resolveFromStep fetches a named numeric field out of an earlier step's
// Data payload (§4.12 "later steps may reference earlier outputs by
// {from_step: NAME, from_field: data.<path>}", e.g.
// "TrafficMatrixPlacement.alpha_from_step = msd_step"). fieldPath is a
// dot-path rooted at the step's Data map (without the leading "data."
// prefix the spec's example shows, since Data already *is* that subtree).
// An empty fieldPath defaults to "alpha_star", the one field every current
// catalog producer of a from_step reference (MaximumSupportedDemand)
// exposes.
func resolveFromStep(rt *runtime, stepName, fieldPath string) (float64, error) {
	out, ok := rt.report.ByName(stepName)
	if !ok {
		return 0, &ngerr.AnalysisError{Step: stepName, Msg: "unknown from_step reference"}
	}
	if fieldPath == "" {
		fieldPath = "alpha_star"
	}

	cur := out.Data
	for _, seg := range strings.Split(fieldPath, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return 0, &ngerr.AnalysisError{Step: stepName, Msg: "from_field " + fieldPath + " does not resolve to a scalar"}
		}
		cur, ok = m[seg]
		if !ok {
			return 0, &ngerr.AnalysisError{Step: stepName, Msg: "from_field " + fieldPath + ": no such key " + seg}
		}
	}

	switch v := cur.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &ngerr.AnalysisError{Step: stepName, Msg: "from_field " + fieldPath + " is not numeric"}
		}
		return f, nil
	default:
		return 0, &ngerr.AnalysisError{Step: stepName, Msg: "from_field " + fieldPath + " is not numeric"}
	}
}

// paramString reads an optional string parameter from a step's Params
// attribute bag.
func paramString(step compiledStep, key string) string {
	v, ok := step.def.Params.Value.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

// paramNumber reads an optional numeric parameter from a step's Params
// attribute bag, falling back to def if absent.
func paramNumber(step compiledStep, key string, def float64) float64 {
	v, ok := step.def.Params.Value.Get(key)
	if !ok {
		return def
	}
	n, ok := v.AsNumber()
	if !ok {
		return def
	}
	return n
}

// paramInt is paramNumber truncated to int.
func paramInt(step compiledStep, key string, def int) int {
	return int(paramNumber(step, key, float64(def)))
}
