package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/portfolio"
)

// newValidator registers the portfolio-specific tags on top of the built-ins.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return portfolio.ValidThemeName(strings.ToLower(fl.Field().String()))
	})
	_ = v.RegisterValidation("csscolor", func(fl validator.FieldLevel) bool {
		return portfolio.ValidColor(fl.Field().String())
	})
	return v
}

// validationMessage reports the first failing field.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Sprintf("invalid %s: failed %q", strings.ToLower(ve[0].Field()), ve[0].Tag())
	}
	return "invalid request"
}
