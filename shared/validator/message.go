package validator

import (
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"gte":         "{field} must be greater than or equal to {param}",
	"gtfield":     "{field} must be after {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"email":       "{field} must be a valid email address",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// stringMessages override messages for string fields, where min/max are lengths.
var stringMessages = map[string]string{
	"min": "{field} must be at least {param} characters",
	"max": "{field} must be at most {param} characters",
}

func fieldMessage(fe val.FieldError) string {
	tmpl := messages[fe.Tag()]

	if fe.Kind() == reflect.String {
		if override, ok := stringMessages[fe.Tag()]; ok {
			tmpl = override
		}
	}

	if tmpl == "" {
		return fe.Error()
	}

	return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(tmpl)
}

// fields maps every failing field (by its JSON name) to a readable message.
// The first error in declaration order becomes the summary message.
func fields(errs val.ValidationErrors) (string, map[string]string) {
	out := make(map[string]string, len(errs))
	summary := ""

	for _, fe := range errs {
		msg := fieldMessage(fe)
		if _, exists := out[fe.Field()]; !exists {
			out[fe.Field()] = msg
		}

		if summary == "" {
			summary = msg
		}
	}

	return summary, out
}
