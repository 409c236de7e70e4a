package hiera

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hoici/hoidev/internal/errors"
)

// Variable is one key/value pair from the override file's "variables"
// mapping. Keys and values are free-form; no validation is applied.
type Variable struct {
	Key   string
	Value string
}

// ReadVariables extracts the "variables" mapping from the override file,
// preserving document order. An empty path, a missing file, or an absent or
// empty mapping all yield an empty result. Whether a supplied path must
// exist is the caller's precondition, checked before any build work.
func ReadVariables(path string) ([]Variable, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ExitInput, "cannot read "+path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.PreconditionError("cannot parse %s: %v", path, err)
	}

	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "variables" {
			continue
		}

		mapping := root.Content[i+1]
		if mapping.Kind != yaml.MappingNode {
			return nil, nil
		}

		vars := make([]Variable, 0, len(mapping.Content)/2)
		for j := 0; j+1 < len(mapping.Content); j += 2 {
			vars = append(vars, Variable{
				Key:   mapping.Content[j].Value,
				Value: mapping.Content[j+1].Value,
			})
		}
		return vars, nil
	}

	return nil, nil
}
