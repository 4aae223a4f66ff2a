package validation

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"nutrition-app/internal/domain/plans"
)

var (
	once    sync.Once
	onceErr error
)

// Register adds the domain tags to gin's binding validator:
//
//	plan  sellable plan name (PREMIUM, PROFESSIONAL; any case)
//	tier  free | premium | professional
//	isodate  YYYY-MM-DD
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			onceErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("plan", validatePlan); err != nil {
			onceErr = err
			return
		}
		if err := v.RegisterValidation("tier", validateTier); err != nil {
			onceErr = err
			return
		}
		onceErr = v.RegisterValidation("isodate", validateISODate)
	})
	return onceErr
}

func validatePlan(fl validator.FieldLevel) bool {
	return plans.IsKnownPlan(fl.Field().String())
}

func validateTier(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return plans.NormalizeTier(s) == s
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
