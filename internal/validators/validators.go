// Package validators registers the custom binding tags used by request
// structs.
package validators

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
)

var (
	once        sync.Once
	registerErr error
)

// Register installs "hhmm" and "krphone" on gin's validator. Safe to call
// more than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validators: unexpected binding engine")
			return
		}
		if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsHHMM(fl.Field().String())
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("krphone", func(fl validator.FieldLevel) bool {
			return IsKoreanPhone(fl.Field().String())
		})
	})
	return registerErr
}

func IsHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := availability.ParseClock(s)
	return err == nil
}

// IsKoreanPhone accepts 02-123-4567, 010-1234-5678 and the same without
// separators.
func IsKoreanPhone(s string) bool {
	digits := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s))
	if len(digits) < 9 || len(digits) > 11 || digits[0] != '0' {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
