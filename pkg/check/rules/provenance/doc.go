// Package provenance registers the datapoint provenance rule: every data
// point's incoming data flow must match its declared source kind.
package provenance
