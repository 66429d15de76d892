package file

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchemaJSON describes the shape of a persisted store. It checks
// structure only; duplicate ids and counter consistency are not validated.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["tasks", "next_id"],
  "properties": {
    "next_id": {"type": "integer", "minimum": 0},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "description", "completed", "priority", "created_at"],
        "properties": {
          "id": {"type": "integer", "minimum": 0},
          "description": {"type": "string"},
          "completed": {"type": "boolean"},
          "priority": {"enum": ["Low", "Medium", "High"]},
          "created_at": {"type": "string"},
          "completed_at": {"type": "string"}
        }
      }
    }
  }
}`

var documentSchema = jsonschema.MustCompileString("todo.schema.json", documentSchemaJSON)

// FieldError is a single schema violation.
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// validateShape checks a decoded JSON value against the document schema and
// returns the joined leaf violations.
func validateShape(doc any) error {
	err := documentSchema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &FieldError{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath turns "/tasks/0/priority" into "tasks[0].priority".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
