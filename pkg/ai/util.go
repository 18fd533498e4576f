package ai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// ErrMalformedOutput marks model output that could not be decoded into the
// requested shape even after repair. Callers use it to tell bad output
// apart from transport failures.
var ErrMalformedOutput = errors.New("malformed model output")

// GenerateSchema generates a JSON schema for the given value's type.
// The schema inlines all definitions and disallows additional properties,
// which is what the structured-output APIs expect.
func GenerateSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}

// UnmarshalFlexible unmarshals JSON data into v, attempting to repair
// malformed JSON if standard unmarshaling fails. Models occasionally
// emit truncated or loosely quoted JSON; jsonrepair recovers most of
// those cases.
func UnmarshalFlexible(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(data)
	if err != nil {
		return fmt.Errorf("%w: failed to repair JSON: %v", ErrMalformedOutput, err)
	}

	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: failed to unmarshal repaired JSON: %v", ErrMalformedOutput, err)
	}

	return nil
}
