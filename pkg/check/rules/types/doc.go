// Package types registers the typing rules: table/datapoint type
// reconciliation and TBD placeholder tracking.
package types
