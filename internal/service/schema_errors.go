package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// licenseVersionPattern is the licence versions this parser accepts
var licenseVersionPattern = regexp.MustCompile(`^v0\.3\.\d+$`)

// structValidator checks manifests and licence metadata against their schema tags.
// Field names in errors follow the JSON field names.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("licenseversion", func(fl validator.FieldLevel) bool {
		return licenseVersionPattern.MatchString(fl.Field().String())
	})
	return v
}

// schemaErrors validates s and returns one message per failed rule, formatted
// as "<json.path>: <reason>"
func schemaErrors(s interface{}) []string {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}
	return messages
}

func describeFieldError(fe validator.FieldError) string {
	path := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		parent := ""
		if i := strings.LastIndexByte(path, '.'); i >= 0 {
			parent = path[:i]
		}
		return withPath(parent, fmt.Sprintf("must have required property '%s'", fe.Field()))
	case "eq":
		return withPath(path, "must be equal to constant")
	case "oneof":
		return withPath(path, "must be equal to one of the allowed values")
	case "licenseversion":
		return withPath(path, fmt.Sprintf("must match pattern \"%s\"", licenseVersionPattern.String()))
	default:
		return withPath(path, fmt.Sprintf("failed on the '%s' rule", fe.Tag()))
	}
}

// fieldPath strips the root struct name from the error namespace
func fieldPath(fe validator.FieldError) string {
	namespace := fe.Namespace()
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func withPath(path, message string) string {
	if path == "" {
		return message
	}
	return path + ": " + message
}
