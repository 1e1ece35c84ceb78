package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fieldSpec struct {
	Aliases []string `yaml:"aliases"`
	Format  string   `yaml:"format"`
}

type fieldsFile struct {
	Fields map[string]fieldSpec `yaml:"fields"`
}

// LoadFields reads a field table from a YAML file, so alias drift in newly
// observed filings can be patched without a rebuild. Recognized format
// names: date, amount, strip.
func LoadFields(path string) (map[string]Field, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file fieldsFile
	if err := yaml.Unmarshal(blob, &file); err != nil {
		return nil, fmt.Errorf("parse field table %s: %w", path, err)
	}
	if len(file.Fields) == 0 {
		return nil, fmt.Errorf("field table %s: no fields defined", path)
	}

	out := make(map[string]Field, len(file.Fields))
	for name, spec := range file.Fields {
		field := Field{Aliases: spec.Aliases}
		switch spec.Format {
		case "":
		case "date":
			field.Format = FormatDate
		case "amount":
			field.Format = FormatAmount
		case "strip":
			field.Format = FormatStrip
		default:
			return nil, fmt.Errorf("field table %s: field %s: unknown format %q", path, name, spec.Format)
		}
		out[name] = field
	}
	return out, nil
}
