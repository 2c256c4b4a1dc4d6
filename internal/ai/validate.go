// README: Structural check of decoded replies against a response schema.
package ai

import (
	"fmt"
	"strconv"

	"github.com/google/generative-ai-go/genai"
	"github.com/samber/lo"
)

// Validate walks v (as produced by encoding/json into any) and reports the first required
// field that is missing or has the wrong JSON type. Enum membership is not enforced: callers
// map unknown labels to a default instead of rejecting the whole reply.
func Validate(schema *genai.Schema, v any) error {
	return validateAt("$", schema, v)
}

func validateAt(path string, schema *genai.Schema, v any) error {
	if schema == nil {
		return nil
	}
	if v == nil {
		if schema.Nullable {
			return nil
		}
		return fmt.Errorf("%s: null value", path)
	}

	switch schema.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object", path)
		}
		for _, name := range schema.Required {
			if _, ok := obj[name]; !ok {
				return fmt.Errorf("%s.%s: required field missing", path, name)
			}
		}
		for name, prop := range schema.Properties {
			field, ok := obj[name]
			// An explicit null on an optional property counts as absent.
			if !ok || (field == nil && !lo.Contains(schema.Required, name)) {
				continue
			}
			if err := validateAt(path+"."+name, prop, field); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array", path)
		}
		for i, item := range arr {
			if err := validateAt(path+"["+strconv.Itoa(i)+"]", schema.Items, item); err != nil {
				return err
			}
		}
	case genai.TypeString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%s: expected string", path)
		}
	case genai.TypeBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%s: expected boolean", path)
		}
	case genai.TypeNumber, genai.TypeInteger:
		if _, ok := v.(float64); !ok {
			return fmt.Errorf("%s: expected number", path)
		}
	}
	return nil
}
