package scenario

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ngcore/netgraph/ngerr"
)

// aliasDoc captures the two historically-diverged key names noted in
// SPEC_FULL's Open Question (a) ("traffic_matrix_set"/"failure_policy_set"
// vs "demands"/"failures"). Decode accepts either spelling at the document
// boundary and normalizes to the canonical `demands`/`failures` fields;
// everything past Decode sees only Document.
type aliasDoc struct {
	TrafficMatrixSet []DemandDef        `yaml:"traffic_matrix_set,omitempty"`
	FailurePolicySet []FailurePolicyDef `yaml:"failure_policy_set,omitempty"`
}

// Decode parses a scenario document from YAML bytes into a Document and
// normalizes the legacy alias key names. Unrecognized keys are not
// rejected: KnownFields is off so the alias keys can decode alongside
// Document's fields, and any other unknown key is ignored. Malformed YAML
// or a value of the wrong type yields a SchemaError.
func Decode(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(false) // aliasDoc's legacy keys must decode alongside Document's

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &ngerr.SchemaError{Path: "$", Msg: fmt.Sprintf("parse yaml: %v", err)}
	}

	var aliases aliasDoc
	if err := yaml.Unmarshal(data, &aliases); err == nil {
		if len(doc.Demands) == 0 && len(aliases.TrafficMatrixSet) > 0 {
			doc.Demands = aliases.TrafficMatrixSet
		}
		if len(doc.Failures) == 0 && len(aliases.FailurePolicySet) > 0 {
			doc.Failures = aliases.FailurePolicySet
		}
	}

	return &doc, nil
}

// RuleModeChoice/RuleModeRandom/RuleModeAll mirror the rule_type/mode alias
// from the same Open Question: "mode: choice" vs "rule_type: choice" name
// the identical concept. FailureRuleDef.Mode is the canonical field; callers
// decoding a document that instead used "rule_type" should remap before
// constructing a FailureRuleDef — scenario only owns the YAML shape named
// above, matching what this pack's examples do (one canonical struct field,
// alias normalization left to the one Decode entry point).
const (
	RuleModeAll    = "all"
	RuleModeChoice = "choice"
	RuleModeRandom = "random"
)
