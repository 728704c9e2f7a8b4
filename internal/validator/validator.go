package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studyboss/study-service/internal/models"
)

// Validator wraps struct-tag validation and the quiz question validator
// behind one instance that is shared by all services.
type Validator struct {
	structValidator *validator.Validate
	quizValidator   *QuizValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		quizValidator:   NewQuizValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Quiz returns the quiz question validator
func (v *Validator) Quiz() *QuizValidator {
	return v.quizValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("plan_type", validatePlanType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validatePlanType(fl validator.FieldLevel) bool {
	validPlans := []models.PlanType{
		models.PlanFree,
		models.PlanPremium,
		models.PlanVIP,
	}

	value := fl.Field().String()
	for _, validPlan := range validPlans {
		if string(validPlan) == value {
			return true
		}
	}
	return false
}
