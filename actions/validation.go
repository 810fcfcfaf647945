package actions

import (
	"errors"
	"reflect"
	"strings"

	"gyangroup/models"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return models.IsSlug(fl.Field().String())
	})
	return v
}

// check validates in and returns every violated field, or nil.
func (a *Actions) check(in any) []Issue {
	err := a.validate.Struct(in)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []Issue{{Field: "", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(errs))
	for _, fe := range errs {
		issues = append(issues, Issue{Field: fe.Field(), Message: issueMessage(fe)})
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return label + " must have at least " + fe.Param() + " item(s)"
		}
		if fe.Type().Kind() == reflect.Int {
			return label + " must be at least " + fe.Param()
		}
		return label + " must be at least " + fe.Param() + " characters long"
	case "max":
		return label + " must be at most " + fe.Param()
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid " + strings.ToLower(label) + " URL"
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "slug":
		return label + " must contain only lowercase letters, numbers and single hyphens"
	}
	return label + " is invalid"
}

// fieldLabel turns a JSON field name like "casNumber" or "tags[0]" into
// "Cas number" or "Tag".
func fieldLabel(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		field = strings.TrimSuffix(field[:i], "s")
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
