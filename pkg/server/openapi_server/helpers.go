// SPDX-License-Identifier: MIT

package openapi_server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Response return a ImplResponse struct filled
func Response(code int, body interface{}) ImplResponse {
	return ImplResponse{
		Code: code,
		Body: body,
	}
}

// assertValid runs the struct tag validation of a request model. A failed
// required rule becomes a RequiredError, any other rule a ParsingError.
func assertValid(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ParsingError{Err: err}
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return &RequiredError{Field: fe.Field()}
	}
	return &ParsingError{Err: fmt.Errorf("field '%s' failed '%s' validation", fe.Field(), fe.Tag())}
}
