// Package references registers the component reference rule: component
// captures/displays entries resolve by id or label, and every component
// connects to at least one data point.
package references
