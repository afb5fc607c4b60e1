package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ichramsyah/bebasblog-backend/helper"
)

var (
	validate = newValidator()
	handleRe = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// handle: usernames appear in URLs, so only letters, digits, "_" and ".".
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handleRe.MatchString(fl.Field().String())
	})
	return v
}

// validateInput runs struct validation and turns the first failure into a BadRequest.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return helper.Internal(err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return helper.BadRequest(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return helper.BadRequest(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	case "min":
		return helper.BadRequest(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	case "max":
		return helper.BadRequest(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	case "handle":
		return helper.BadRequest(fmt.Sprintf("%s may only contain letters, digits, \"_\" and \".\"", fe.Field()))
	}
	return helper.BadRequest(fmt.Sprintf("%s is invalid", fe.Field()))
}
