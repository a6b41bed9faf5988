// Package validation checks constructor and method arguments against
// declarative schemas and reports every violation in one error.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// Violation reasons.
const (
	ReasonRequired       = "is required"
	ReasonString         = "must be a string"
	ReasonURI            = "must be a valid uri"
	ReasonObject         = "must be an object"
	ReasonFunction       = "must be a Function"
	ReasonNumber         = "must be a number"
	ReasonPositiveNumber = "must be a positive number"
)

// Rule is a single check applied to a present value.
type Rule struct {
	Reason string
	Test   func(value interface{}) bool
}

// Field declares the rules of one named parameter.
type Field struct {
	Name     string
	Required bool
	Rules    []Rule
	// Nested runs after every rule passed and may report violations on
	// sub-fields of the value.
	Nested func(field string, value interface{}) []concourse.Violation
}

// Schema is an ordered list of fields. Violations are reported in this order.
type Schema []Field

// Validate checks values against schema. It returns nil or a
// *concourse.ValidationError holding the first violation of each field.
func Validate(schema Schema, values map[string]interface{}) error {
	var violations []concourse.Violation

	for _, field := range schema {
		violations = append(violations, field.check(values[field.Name])...)
	}

	if len(violations) == 0 {
		return nil
	}

	return &concourse.ValidationError{Violations: violations}
}

func (f Field) check(value interface{}) []concourse.Violation {
	if isAbsent(value) {
		if f.Required {
			return []concourse.Violation{{Field: f.Name, Reason: ReasonRequired}}
		}

		return nil
	}

	for _, rule := range f.Rules {
		if !rule.Test(value) {
			return []concourse.Violation{{Field: f.Name, Reason: rule.Reason}}
		}
	}

	if f.Nested != nil {
		return f.Nested(f.Name, value)
	}

	return nil
}

// isAbsent treats nil, nil pointers/interfaces/maps/funcs and the empty
// string as missing.
func isAbsent(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.String:
		return rv.Len() == 0
	default:
		return false
	}
}

// String accepts string values.
func String() Rule {
	return Rule{
		Reason: ReasonString,
		Test: func(value interface{}) bool {
			return reflect.ValueOf(value).Kind() == reflect.String
		},
	}
}

// URI accepts absolute URIs usable as a base for further path segments,
// so a query or fragment is rejected.
func URI() Rule {
	return Rule{
		Reason: ReasonURI,
		Test: func(value interface{}) bool {
			rv := reflect.ValueOf(value)
			if rv.Kind() != reflect.String {
				return false
			}

			if strings.ContainsAny(rv.String(), "?#") {
				return false
			}

			return structValidator.Var(rv.String(), "url") == nil
		},
	}
}

// Object accepts structs, pointers to structs and maps.
func Object() Rule {
	return Rule{
		Reason: ReasonObject,
		Test: func(value interface{}) bool {
			rv := reflect.ValueOf(value)

			switch rv.Kind() {
			case reflect.Struct, reflect.Map:
				return true
			case reflect.Ptr:
				return rv.Elem().Kind() == reflect.Struct
			default:
				return false
			}
		},
	}
}

// Function accepts func values and implementations of concourse.Caller.
func Function() Rule {
	return Rule{
		Reason: ReasonFunction,
		Test: func(value interface{}) bool {
			if _, ok := value.(concourse.Caller); ok {
				return true
			}

			return reflect.ValueOf(value).Kind() == reflect.Func
		},
	}
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	return validate
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}
