package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("model: register notblank validation: %v", err))
	}
	return v
}

// checkStruct runs tag validation over a constructor parameter struct and
// reports the first violation in a readable form.
func checkStruct(params interface{}) string {
	err := validate.Struct(params)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// nowFunc is the clock used for "issued at" stamps and the no-past-booking
// rule. Tests replace it to get deterministic timestamps.
var nowFunc = time.Now
