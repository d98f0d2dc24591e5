// ABOUTME: JSON Schemas for the top-level fields of a backup document.
// ABOUTME: Each field is validated on its own so problems are reported per field.
package backup

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

const setSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"weight": {"type": "number"},
		"reps": {"type": "number"},
		"distance": {"type": "number"},
		"timeSec": {"type": "number"},
		"note": {"type": "string"},
		"createdAt": {"type": "string"}
	}
}`

var fieldSchemas = map[string]string{
	"workouts": `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["date"],
			"properties": {
				"id": {"type": "number"},
				"date": {"type": "string"},
				"createdAt": {"type": "string"},
				"exercises": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["exerciseId"],
						"properties": {
							"exerciseId": {"type": "number"},
							"sets": {"type": "array", "items": ` + setSchema + `}
						}
					}
				}
			}
		}
	}`,
	"exercises": `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["name", "type"],
			"properties": {
				"id": {"type": "number"},
				"name": {"type": "string", "minLength": 1},
				"category": {"type": "string"},
				"type": {"enum": ["weight_reps", "distance_time", "time_only", "reps_only", "bodyweight"]},
				"notes": {"type": "string"},
				"custom": {"type": "boolean"},
				"createdAt": {"type": "string"}
			}
		}
	}`,
	"measurements": `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["type", "value", "date"],
			"properties": {
				"id": {"type": "number"},
				"type": {"enum": ["weight", "body_fat", "muscle_mass", "waist", "chest", "arms", "thighs"]},
				"value": {"type": "number"},
				"date": {"type": "string"},
				"notes": {"type": "string"},
				"createdAt": {"type": "string"}
			}
		}
	}`,
	"routines": `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"id": {"type": "number"},
				"name": {"type": "string", "minLength": 1},
				"description": {"type": "string"},
				"color": {"type": "string"},
				"createdAt": {"type": "string"},
				"exercises": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["exerciseId"],
						"properties": {"exerciseId": {"type": "number"}}
					}
				}
			}
		}
	}`,
	"settings": `{
		"type": ["object", "null"],
		"properties": {
			"theme": {"enum": ["light", "dark", "auto"]},
			"units": {"enum": ["metric", "imperial"]},
			"weightIncrement": {"type": "number", "exclusiveMinimum": 0},
			"timerSound": {"type": "boolean"},
			"seedingDone": {"type": "boolean"}
		}
	}`,
}

// requiredFields must be present in every document; settings may be omitted.
var requiredFields = []string{"workouts", "exercises", "measurements", "routines"}

var resolvedSchemas = sync.OnceValues(func() (map[string]*jsonschema.Resolved, error) {
	out := make(map[string]*jsonschema.Resolved, len(fieldSchemas))
	for field, text := range fieldSchemas {
		var s jsonschema.Schema
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return nil, fmt.Errorf("parse %s schema: %w", field, err)
		}
		r, err := s.Resolve(&jsonschema.ResolveOptions{})
		if err != nil {
			return nil, fmt.Errorf("resolve %s schema: %w", field, err)
		}
		out[field] = r
	}
	return out, nil
})

// validateShape checks the envelope: a JSON object, version 1, and every
// field matching its schema. It returns one message per problem.
func validateShape(raw []byte) []string {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []string{fmt.Sprintf("invalid JSON: %v", err)}
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return []string{"backup must be a JSON object"}
	}

	var problems []string
	if v, ok := obj["version"].(float64); !ok || v != Version {
		problems = append(problems, fmt.Sprintf("version: expected %d, got %v", Version, obj["version"]))
	}
	for _, field := range requiredFields {
		if _, ok := obj[field]; !ok {
			problems = append(problems, fmt.Sprintf("%s: required field missing", field))
		}
	}

	schemas, err := resolvedSchemas()
	if err != nil {
		return append(problems, err.Error())
	}
	fields := make([]string, 0, len(schemas))
	for field := range schemas {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		value, ok := obj[field]
		if !ok {
			continue
		}
		if err := schemas[field].Validate(value); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", field, err))
		}
	}
	return problems
}
