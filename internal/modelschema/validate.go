// internal/modelschema/validate.go
package modelschema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const rootField = "(root)"

// Violation describes one constraint a raw record failed.
type Violation struct {
	Field    string `json:"field"`
	Rule     string `json:"rule"`
	Expected string `json:"expected,omitempty"`
	Message  string `json:"message"`
}

func (v Violation) String() string {
	if v.Expected == "" {
		return fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("%s: %s (expected %s)", v.Field, v.Message, v.Expected)
}

// ViolationError is returned when a raw record does not satisfy the record schema.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "model record failed validation: " + strings.Join(parts, "; ")
}

// First returns the first violation in field order.
func (e *ViolationError) First() Violation {
	if len(e.Violations) == 0 {
		return Violation{}
	}
	return e.Violations[0]
}

// ValidateJSON parses data as JSON and validates the result.
func ValidateJSON(data []byte) (ModelRecord, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return ModelRecord{}, fmt.Errorf("parse record JSON: %w", err)
	}
	return Validate(raw)
}

// ValidateYAML parses data as YAML and validates the result.
func ValidateYAML(data []byte) (ModelRecord, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ModelRecord{}, fmt.Errorf("parse record YAML: %w", err)
	}
	return Validate(raw)
}

// Validate checks an arbitrary JSON-like value against the record schema and, when it
// conforms, returns it as a typed ModelRecord. Schema failures are reported as a
// *ViolationError listing every violated constraint.
func Validate(raw any) (ModelRecord, error) {
	var bad []Violation
	doc := normalize(raw, "", &bad)
	if len(bad) > 0 {
		return ModelRecord{}, newViolationError(bad)
	}

	schema, err := loadSchema()
	if err != nil {
		return ModelRecord{}, fmt.Errorf("compile record schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return ModelRecord{}, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			bad = append(bad, toViolation(desc))
		}
		return ModelRecord{}, newViolationError(bad)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return ModelRecord{}, fmt.Errorf("encode record: %w", err)
	}
	var record ModelRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return ModelRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

func newViolationError(violations []Violation) *ViolationError {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Field != violations[j].Field {
			return violations[i].Field < violations[j].Field
		}
		return violations[i].Rule < violations[j].Rule
	})
	return &ViolationError{Violations: violations}
}

func toViolation(desc gojsonschema.ResultError) Violation {
	field := desc.Field()
	details := desc.Details()
	switch desc.Type() {
	case "required", "additional_property_not_allowed", "invalid_property_name":
		if prop, ok := details["property"].(string); ok {
			field = joinField(field, prop)
		}
	}
	return Violation{
		Field:    field,
		Rule:     desc.Type(),
		Expected: expectedFor(desc.Type(), details),
		Message:  desc.Description(),
	}
}

func expectedFor(rule string, details gojsonschema.ErrorDetails) string {
	switch rule {
	case "invalid_type":
		return fmt.Sprint(details["expected"])
	case "enum":
		return "one of " + fmt.Sprint(details["allowed"])
	case "pattern":
		return "pattern " + fmt.Sprint(details["pattern"])
	case "invalid_property_name":
		return "key matching " + RequirementKeyPattern
	case "number_gte", "array_min_items", "string_gte":
		return ">= " + fmt.Sprint(details["min"])
	case "number_lte":
		return "<= " + fmt.Sprint(details["max"])
	case "number_not":
		return "no email field"
	case "required":
		return "present"
	case "additional_property_not_allowed":
		return "no additional properties"
	case "number_one_of":
		return `"not applicable", "not available" or an object`
	case "unique":
		return "unique items"
	default:
		return ""
	}
}

func joinField(parent, child string) string {
	if parent == "" || parent == rootField {
		return child
	}
	return parent + "." + child
}

// normalize converts decoded YAML/JSON (or plain Go values) into the map[string]any tree the
// schema loader expects, collecting a violation for every non-finite number on the way.
func normalize(v any, path string, bad *[]Violation) any {
	switch t := v.(type) {
	case nil, string, bool, json.Number:
		return t
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			*bad = append(*bad, nonFinite(path, t))
			return nil
		}
		return t
	case float32:
		return normalize(float64(t), path, bad)
	case time.Time:
		return t.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e, joinField(path, k), bad)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			key := fmt.Sprint(k)
			out[key] = normalize(e, joinField(path, key), bad)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e, joinField(path, strconv.Itoa(i)), bad)
		}
		return out
	default:
		data, err := json.Marshal(t)
		if err != nil {
			*bad = append(*bad, Violation{Field: fieldOrRoot(path), Rule: "unsupported_value", Message: err.Error()})
			return nil
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			*bad = append(*bad, Violation{Field: fieldOrRoot(path), Rule: "unsupported_value", Message: err.Error()})
			return nil
		}
		return normalize(generic, path, bad)
	}
}

func nonFinite(path string, f float64) Violation {
	return Violation{
		Field:    fieldOrRoot(path),
		Rule:     "non_finite",
		Expected: "finite number",
		Message:  fmt.Sprintf("Invalid number %v", f),
	}
}

func fieldOrRoot(path string) string {
	if path == "" {
		return rootField
	}
	return path
}
