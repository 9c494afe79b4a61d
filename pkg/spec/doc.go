// Package spec defines the typed node/edge/screen model of an application
// specification and a read-only indexed Graph over a snapshot of it.
//
// Nodes form a tagged union over their kind: each node carries exactly one
// typed data variant, reached through the narrowing accessors (AsDataPoint,
// AsComponent, AsTransform, AsTable). Screen and image nodes carry no data
// variant and are excluded from business-rule analysis.
package spec
