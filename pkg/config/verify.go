package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the JSON schema of Config
func GenerateSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true, RequiredFromJSONSchemaTags: true}
	return r.Reflect(&Config{})
}

// VerifyRequired checks that every field marked required in the reflected schema is set
func VerifyRequired(cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var missing []string
	checkRequired(GenerateSchema(), doc, "", &missing)
	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// checkRequired walks the schema along the document, collecting empty required fields
func checkRequired(schema *jsonschema.Schema, value any, path string, missing *[]string) {
	if schema == nil {
		return
	}
	switch v := value.(type) {
	case map[string]any:
		for _, name := range schema.Required {
			if isEmpty(v[name]) {
				*missing = append(*missing, join(path, name))
			}
		}
		if schema.Properties == nil {
			return
		}
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if child, ok := v[pair.Key]; ok {
				checkRequired(pair.Value, child, join(path, pair.Key), missing)
			}
		}
	case []any:
		for i, elem := range v {
			checkRequired(schema.Items, elem, fmt.Sprintf("%s[%d]", path, i), missing)
		}
	}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	default:
		return false
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
