package analyze

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// analysisSchema constrains what a remote analyzer may return. Validated
// locally before the payload is trusted.
const analysisSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "violations": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "timeline_events": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "date": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "description": {"type": "string"}
        },
        "required": ["date"]
      }
    },
    "case_info": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "case_number": {"type": "string"},
        "dates": {"type": "array", "items": {"type": "string"}},
        "names": {"type": "array", "items": {"type": "string"}},
        "locations": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var compiledAnalysisSchema = jsonschema.MustCompileString("analysis.json", analysisSchema)

// ParseResult validates raw analyzer JSON against the schema and decodes it.
func ParseResult(raw []byte) (Result, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Result{}, fmt.Errorf("decode analysis: %w", err)
	}
	if err := compiledAnalysisSchema.Validate(v); err != nil {
		return Result{}, fmt.Errorf("validate analysis: %w", err)
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, fmt.Errorf("decode analysis: %w", err)
	}
	return res, nil
}
