package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/marcus/notehub/internal/note"
)

// Field names, as reported in error maps.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldTag     = "tag"
)

// Values is what the form submits.
type Values struct {
	Title   string `form:"title" validate:"required,min=3,max=50"`
	Content string `form:"content" validate:"max=500"`
	Tag     string `form:"tag" validate:"required,oneof=Todo Work Personal Meeting Shopping"`
}

// Normalized returns v as it is sent to the API: content is trimmed.
func (v Values) Normalized() Values {
	v.Content = strings.TrimSpace(v.Content)
	return v
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks v and returns the first error message per field. The map
// is empty when v is valid.
func Validate(v Values) map[string]string {
	errs := make(map[string]string)

	err := validate.Struct(v)
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs[FieldTitle] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case FieldTitle:
		switch fe.Tag() {
		case "required":
			return "Title is required"
		case "min":
			return fmt.Sprintf("Title must be at least %s characters", fe.Param())
		case "max":
			return fmt.Sprintf("Title must be at most %s characters", fe.Param())
		}
	case FieldContent:
		if fe.Tag() == "max" {
			return fmt.Sprintf("Max %s characters", fe.Param())
		}
	case FieldTag:
		switch fe.Tag() {
		case "required":
			return "Tag is required"
		case "oneof":
			return "Tag must be one of: " + tagList()
		}
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func tagList() string {
	tags := note.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
