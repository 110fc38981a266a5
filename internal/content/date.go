package content

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseNullableDate decodes a front-matter value that must be present and
// is either a date or null. A zero node means the key was absent.
func parseNullableDate(node yaml.Node) (*time.Time, error) {
	if node.Kind == 0 {
		return nil, errors.New("is required (use null for drafts)")
	}
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: expected a date or null", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return nil, err
		}
		return &t, nil
	case "!!str":
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, node.Value); err == nil {
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("line %d: expected a date or null, got %q", node.Line, node.Value)
}

func validNullableDate(value any) error {
	node, ok := value.(yaml.Node)
	if !ok {
		return errors.New("must be a yaml node")
	}
	_, err := parseNullableDate(node)
	return err
}
