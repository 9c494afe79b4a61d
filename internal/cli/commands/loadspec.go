package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/spec"
	"github.com/loomstack-labs/specloom/pkg/specio"
)

// loadSpecFile reads and decodes a specification document. The file
// extension selects the parser; anything that is not .json parses as
// YAML (which also accepts JSON).
func loadSpecFile(path string) ([]spec.Node, []spec.Edge, []spec.Screen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc *specio.Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = specio.ParseJSON(data)
	} else {
		doc, err = specio.ParseYAML(data)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	nodes, edges, screens, err := doc.Decode()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nodes, edges, screens, nil
}
