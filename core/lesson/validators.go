package lesson

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/smartjhs/smartjhs/core"
)

var (
	levelTag  = "level"
	levelText = fmt.Sprintf("level must be one of %v", Levels)

	orderingTag  = "ordering"
	orderingText = fmt.Sprintf("ordering fields must be among %v", OrderingFields)

	contentSizeTag = "contentsize"
)

// InitValidators registers the lesson validation tags. Content longer than maxContentBytes is rejected; 0 means unbounded.
func InitValidators(validate *validator.Validate, translator ut.Translator, maxContentBytes int) {
	_ = validate.RegisterValidation(levelTag, oneOfValidation(Levels))
	core.RegisterCustomTranslation(validate, translator, levelTag, levelText)

	_ = validate.RegisterValidation(orderingTag, oneOfValidation(OrderingFields))
	core.RegisterCustomTranslation(validate, translator, orderingTag, orderingText)

	_ = validate.RegisterValidation(contentSizeTag, contentSizeValidation(maxContentBytes))
	core.RegisterCustomTranslation(
		validate, translator, contentSizeTag,
		fmt.Sprintf("content cannot be larger than %d bytes", maxContentBytes),
	)
}

// ValidateOrdering checks that lessons can be sorted by every requested field.
func ValidateOrdering(validate *validator.Validate, ordering []core.DBOrdering) error {
	for _, ord := range ordering {
		if err := validate.Var(ord.Field, orderingTag); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "ordering", Error: orderingText})
		}
	}
	return nil
}

// Custom Validators

func oneOfValidation(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if str, ok := fl.Field().Interface().(string); ok {
			for _, v := range values {
				if str == v {
					return true
				}
			}
		}
		return false
	}
}

func contentSizeValidation(maxBytes int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if str, ok := fl.Field().Interface().(string); ok {
			return maxBytes <= 0 || len(str) <= maxBytes
		}
		return false
	}
}
