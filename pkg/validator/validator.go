package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// C-Chain style account address: 0x followed by 40 hex chars.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// RegisterCustomRules registers the avaxaddress and votetype rules on gin's
// binding validator. Call once at startup.
func RegisterCustomRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin binding validator engine")
	}

	if err := v.RegisterValidation("avaxaddress", func(fl validator.FieldLevel) bool {
		return addressPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("votetype", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		return t == "like" || t == "dislike"
	})
}

// IsWalletAddress reports whether s is a well-formed wallet address.
func IsWalletAddress(s string) bool {
	return addressPattern.MatchString(s)
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "avaxaddress":
		return fmt.Sprintf("%s must be a 0x-prefixed 40-hex-char address", field)
	case "votetype":
		return fmt.Sprintf("%s must be either 'like' or 'dislike'", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
