// Package transforms registers the transform rules: I/O connectivity for
// standalone transforms and structural validity for workflow transforms.
package transforms
