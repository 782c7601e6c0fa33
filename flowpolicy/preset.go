package flowpolicy

import "github.com/ngcore/netgraph/ngerr"

// PathMode selects which edges are eligible for augmentation (§4.8 step 2).
type PathMode int

const (
	// ShortestPathsOnly restricts augmentation to the SPF shortest-path DAG.
	ShortestPathsOnly PathMode = iota
	// AnyPath allows any feasible augmenting path (residual-graph search).
	AnyPath
)

// Preset composes a PathMode, a Policy, and a bundle limit (16 or 256 for
// the MPLS-TE bundle presets, 0 otherwise). BundleLimit is carried on the
// preset only: the max-flow engine does not read it, so placement under a
// bundled TE preset is not bounded by the number of paths.
type Preset struct {
	Name        string
	Mode        PathMode
	Policy      Policy
	BundleLimit int
}

// The five named preset routing modes (§4.7).
var (
	ShortestPathsECMP = Preset{Name: "SHORTEST_PATHS_ECMP", Mode: ShortestPathsOnly, Policy: EqualBalanced()}
	ShortestPathsWCMP = Preset{Name: "SHORTEST_PATHS_WCMP", Mode: ShortestPathsOnly, Policy: Proportional()}
	TEWCMPUnlimited   = Preset{Name: "TE_WCMP_UNLIM", Mode: AnyPath, Policy: Proportional()}
	TEECMP16LSP       = Preset{Name: "TE_ECMP_16_LSP", Mode: AnyPath, Policy: Proportional(), BundleLimit: 16}
	TEECMP256LSP      = Preset{Name: "TE_ECMP_UP_TO_256_LSP", Mode: AnyPath, Policy: Proportional(), BundleLimit: 256}
)

// ByName resolves a preset by its spec name (§4.7's table), the form in
// which workflows and demand policies address it.
func ByName(name string) (Preset, error) {
	switch name {
	case ShortestPathsECMP.Name:
		return ShortestPathsECMP, nil
	case ShortestPathsWCMP.Name:
		return ShortestPathsWCMP, nil
	case TEWCMPUnlimited.Name:
		return TEWCMPUnlimited, nil
	case TEECMP16LSP.Name:
		return TEECMP16LSP, nil
	case TEECMP256LSP.Name:
		return TEECMP256LSP, nil
	default:
		return Preset{}, &ngerr.ConfigurationError{Subject: "flow_policy", Msg: "unknown preset " + name}
	}
}

// Cacheable reports whether SPF results for this preset may be memoized by
// (source, view-identity) per §4.6. It is decided by name: true for
// SHORTEST_PATHS_ECMP, SHORTEST_PATHS_WCMP and TE_WCMP_UNLIM, false for the
// two bundled TE presets and any other name.
func (p Preset) Cacheable() bool {
	switch p.Name {
	case ShortestPathsECMP.Name, ShortestPathsWCMP.Name, TEWCMPUnlimited.Name:
		return true
	default:
		return false
	}
}
