// Package validator adapts go-playground struct-tag validation to the result
// algebra's field-level error list.
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/repstack/repstack/pkg/result"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Init wires the shared validator instance with JSON field names and the
// custom validators used by request types.
func Init() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			v = validator.New()
		}
		validate = v

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("bodyregion", validateBodyRegion)
	})
}

// Get returns the shared validator instance.
func Get() *validator.Validate {
	Init()
	return validate
}

// Struct validates s by its struct tags and returns one result error per
// violated field rule, nil when everything passes.
func Struct(s any) []result.Error {
	if err := Get().Struct(s); err != nil {
		return Parse(err)
	}
	return nil
}

// Parse converts validator violations into result errors, one per field rule.
func Parse(err error) []result.Error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []result.Error{result.Invalid(err.Error())}
	}
	errs := make([]result.Error, 0, len(ve))
	for _, e := range ve {
		errs = append(errs, result.Invalid(formatMessage(e.Field(), e.Tag(), e.Param())))
	}
	return errs
}

func formatMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + param
	case "max":
		return field + " must be at most " + param
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "gt":
		return field + " must be greater than " + param
	case "uuid":
		return field + " must be a valid UUID"
	case "oneof":
		return field + " must be one of: " + param
	case "bodyregion":
		return field + " must be a valid body region (upper, lower, core, full_body)"
	default:
		return field + " is invalid"
	}
}

func validateBodyRegion(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // let required handle empty
	}
	valid := map[string]bool{
		"upper":     true,
		"lower":     true,
		"core":      true,
		"full_body": true,
	}
	return valid[val]
}
