package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Structural constraints on a model file. Semantic checks that need
// the force registry (law names, parameter arity) happen in Build.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["dt", "steps", "populations", "forces"],
  "properties": {
    "name": {"type": "string"},
    "dt": {"type": "number", "exclusiveMinimum": 0},
    "steps": {"type": "integer", "minimum": 1},
    "seed": {"type": "integer"},
    "populations": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["type", "count", "layout"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "count": {"type": "integer", "minimum": 1},
          "layout": {"enum": ["circle", "grid", "uniform"]},
          "center": {"type": "array", "items": {"type": "number"}, "minItems": 2, "maxItems": 2},
          "radius": {"type": "number", "minimum": 0},
          "spacing": {"type": "number", "minimum": 0},
          "width": {"type": "number", "minimum": 0},
          "height": {"type": "number", "minimum": 0}
        }
      }
    },
    "forces": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["law", "params"],
        "properties": {
          "law": {"type": "string", "minLength": 1},
          "params": {"type": "array", "items": {"type": "number"}},
          "min_range": {"type": "number", "minimum": 0},
          "max_range": {"type": "number", "minimum": 0},
          "between": {"type": "array", "items": {"type": "string"}, "minItems": 2, "maxItems": 2},
          "noise_stdev": {"type": "number", "minimum": 0},
          "noise_bound": {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString("cellsim.schema.json", schemaJSON)

// Validate checks the config against the embedded schema. The config
// is round-tripped through JSON so the schema sees plain values.
func (c *Config) Validate() error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
