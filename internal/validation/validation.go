// Package validation checks request payloads and reports problems as a map
// from field name to a human readable message.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/devlink/internal/helpers"
)

var validate = validator.New()

// Result is the outcome of validating one payload. IsValid is true iff
// Errors is empty.
type Result struct {
	Errors  map[string]string
	IsValid bool
}

func newResult(errors map[string]string) Result {
	return Result{Errors: errors, IsValid: len(errors) == 0}
}

func isEmpty(s string) bool {
	return helpers.StringTrim(s) == ""
}

func isEmail(s string) bool {
	return validate.Var(s, "email") == nil
}

// isURL accepts absolute URLs and bare hosts such as "github.com/ann".
func isURL(s string) bool {
	if validate.Var(s, "url") == nil {
		return true
	}
	return strings.Contains(s, ".") && !strings.Contains(s, " ") && validate.Var("https://"+s, "url") == nil
}

// isLength measures the trimmed value, which is what the stores keep.
func isLength(s string, min, max int) bool {
	return lengthBetween(helpers.StringTrim(s), min, max)
}

func lengthBetween(s string, min, max int) bool {
	return validate.Var(s, fmt.Sprintf("min=%d,max=%d", min, max)) == nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate reads the date formats accepted by the experience and education
// forms.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
