package validators

import (
	"mural/internal/domain/entity"

	"github.com/go-playground/validator/v10"
)

// SuggestionModule checks the value against the fixed module set.
func SuggestionModule(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return entity.IsValidModule(val)
}
