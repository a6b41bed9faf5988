package validation

import (
	"errors"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// Parameter names as they appear in validation messages.
const (
	FieldAPIURL       = "apiUrl"
	FieldTeam         = "team"
	FieldHTTPCaller   = "httpCaller"
	FieldPipelineName = "pipelineName"
)

// ClientSchema validates the arguments a pipelines client is built from.
var ClientSchema = Schema{
	{Name: FieldAPIURL, Required: true, Rules: []Rule{String(), URI()}},
	{Name: FieldTeam, Required: true, Rules: []Rule{Object()}, Nested: teamShape},
	{Name: FieldHTTPCaller, Rules: []Rule{Function()}},
}

// PipelineNameSchema validates the name argument of single-pipeline operations.
var PipelineNameSchema = Schema{
	{Name: FieldPipelineName, Required: true, Rules: []Rule{String()}},
}

// ClientValues maps a typed config onto ClientSchema's parameter names.
func ClientValues(cfg *concourse.Config) map[string]interface{} {
	return map[string]interface{}{
		FieldAPIURL:     cfg.APIURL,
		FieldTeam:       cfg.Team,
		FieldHTTPCaller: cfg.Caller,
	}
}

// ValidateConfig runs ClientSchema against cfg.
func ValidateConfig(cfg *concourse.Config) error {
	return Validate(ClientSchema, ClientValues(cfg))
}

// ValidatePipelineName runs PipelineNameSchema against name.
func ValidatePipelineName(name interface{}) error {
	return Validate(PipelineNameSchema, map[string]interface{}{FieldPipelineName: name})
}

var teamFieldOrder = []string{"id", "name"}

// teamShape checks that a team value carries a usable name and, when
// known, a positive id.
func teamShape(field string, value interface{}) []concourse.Violation {
	team, typeErrs, ok := toTeam(value)
	if !ok {
		return []concourse.Violation{{Field: field, Reason: ReasonObject}}
	}

	ruleErrs := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(structValidator.Struct(team), &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			reason := ReasonRequired
			if fieldErr.Tag() == "gt" {
				reason = ReasonPositiveNumber
			}

			ruleErrs[fieldErr.Field()] = reason
		}
	}

	var violations []concourse.Violation

	for _, name := range teamFieldOrder {
		reason, found := typeErrs[name]
		if !found {
			reason, found = ruleErrs[name]
		}

		if found {
			violations = append(violations, concourse.Violation{Field: field + "." + name, Reason: reason})
		}
	}

	return violations
}

func toTeam(value interface{}) (concourse.Team, map[string]string, bool) {
	switch typed := value.(type) {
	case concourse.Team:
		return typed, nil, true
	case *concourse.Team:
		return *typed, nil, true
	case map[string]interface{}:
		team, typeErrs := teamFromMap(typed)

		return team, typeErrs, true
	default:
		return concourse.Team{}, nil, false
	}
}

// teamFromMap reads a team out of an untyped config value.
func teamFromMap(raw map[string]interface{}) (concourse.Team, map[string]string) {
	var team concourse.Team

	typeErrs := make(map[string]string)

	if name, present := raw["name"]; present && name != nil {
		str, ok := name.(string)
		if !ok {
			typeErrs["name"] = ReasonString
		}

		team.Name = str
	}

	if id, present := raw["id"]; present && id != nil {
		number, ok := toInt(id)
		if !ok {
			typeErrs["id"] = ReasonNumber
		}

		team.ID = number
	}

	return team, typeErrs
}

func toInt(value interface{}) (int, bool) {
	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) {
			return 0, false
		}

		return int(f), true
	default:
		return 0, false
	}
}
