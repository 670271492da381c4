package validator

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// SchemaVersionV11 is the only schema version carrying a rule today
const SchemaVersionV11 = "v1.1"

// Error strings reported in Result.Errors
const (
	ParseErrorPrefix    = "JSON parse error: "
	ErrMissingQAIPolicy = "Missing 'qai' policy in v1.1 schema"
	ErrQAINotDenied     = "QAI must be denied in v1.1 schema"
)

// ErrInvalidJSON is reported for text the decoder accepts but strict JSON grammar
// rejects, such as leading zeros or raw control characters in strings.
var ErrInvalidJSON = errors.New("invalid JSON document")

// QAIDenyPolicy is the only accepted value of ai_boundaries.default_consent.qai under v1.1
const QAIDenyPolicy = "deny"

// Result is the outcome of an advanced schema validation
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// JSON encodes the result. Errors is always emitted as an array.
func (r Result) JSON() string {
	if r.Errors == nil {
		r.Errors = []string{}
	}
	encoded, err := json.MarshalWithOption(r, json.DisableHTMLEscape())
	if err != nil {
		// bool + []string cannot fail to encode
		panic("validator: failed to encode result: " + err.Error())
	}
	return string(encoded)
}

// ValidateAdvancedSchema validates a JSON document against the given schema
// version and returns the JSON-encoded Result.
func ValidateAdvancedSchema(data, schemaVersion string) string {
	return Validate([]byte(data), schemaVersion).JSON()
}

// Validate validates a JSON document against the given schema version.
// Parse failures and rule violations are reported in the Result, never as errors.
func Validate(data []byte, schemaVersion string) Result {
	var document interface{}
	if err := Decode(data, &document); err != nil {
		return Result{
			Valid:  false,
			Errors: []string{ParseErrorPrefix + err.Error()},
		}
	}

	result := Result{Valid: true, Errors: []string{}}

	if schemaVersion == SchemaVersionV11 {
		checkQAIPolicy(document, &result)
	}

	return result
}

// Decode parses data into v after checking it against the strict JSON grammar.
// The decoder's own message is kept when it rejects the input itself.
func Decode(data []byte, v interface{}) error {
	err := json.Unmarshal(data, v)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	return nil
}

// checkQAIPolicy applies the v1.1 Quantum AI rule:
// ai_boundaries.default_consent.qai must be the string "deny".
func checkQAIPolicy(document interface{}, result *Result) {
	aiBoundaries, ok := field(document, "ai_boundaries")
	if !ok {
		return
	}
	defaultConsent, ok := field(aiBoundaries, "default_consent")
	if !ok {
		return
	}

	qai, ok := field(defaultConsent, "qai")
	if !ok {
		result.addError(ErrMissingQAIPolicy)
		return
	}
	if policy, isString := qai.(string); !isString || policy != QAIDenyPolicy {
		result.addError(ErrQAINotDenied)
	}
}

// field looks up key on a JSON object. Non-object values have no fields.
func field(value interface{}, key string) (interface{}, bool) {
	object, ok := value.(map[string]interface{})
	if !ok {
		return nil, false
	}
	v, exists := object[key]
	return v, exists
}

func (r *Result) addError(message string) {
	r.Errors = append(r.Errors, message)
	r.Valid = false
}
