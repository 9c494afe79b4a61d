// Package rules registers all consistency rule checks.
// Import this package to register every rule with the global registry.
package rules

import (
	// Blank imports trigger init() functions that register rules with the global registry.
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/provenance" // registers PV* rules
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/references" // registers CP* rules
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/structure"  // registers CY*, OR*, DL*, SC* rules
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/transforms" // registers TF*, WF* rules
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/types"      // registers TY*, TD* rules
)
