// Package validate checks UserProfile and Exercise field ranges at the
// CLI boundary, surfacing violations as the InvalidInput taxonomy entry
// of spec.md §7 before any core function runs.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/misterclayt0n/lazaro/internal/errs"
)

var v = validator.New()

// Profile validates a UserProfile's struct tags (see models.UserProfile)
// and returns an InvalidInput error describing every violated field.
func Profile(p any) *errs.Error {
	return structErr(p)
}

// Exercise validates an Exercise's struct tags (see models.Exercise).
func Exercise(e any) *errs.Error {
	return structErr(e)
}

func structErr(target any) *errs.Error {
	if err := v.Struct(target); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errs.Invalid("%v", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return errs.Invalid("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// DaysPerWeek validates the days-per-week range spec.md §7 calls out
// explicitly (1..5) without requiring a wrapping struct.
func DaysPerWeek(d int) *errs.Error {
	if d < 1 || d > 5 {
		return errs.Invalid("days-per-week must be between 1 and 5, got %d", d)
	}
	return nil
}
