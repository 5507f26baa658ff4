// Package schemas validates incoming resume documents against the embedded
// JSON Schema before they reach the editing core. The core itself is total
// over its inputs; this boundary check keeps junk out of persisted state.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

// ValidationError reports every field that failed schema validation.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation failure at one field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("document validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateResume checks raw JSON against the resume document schema.
// Returns nil for a valid document and a *ValidationError listing the
// offending fields otherwise.
func ValidateResume(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(resumeSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
