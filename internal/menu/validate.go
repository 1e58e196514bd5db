package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xtanyr/lunch/internal/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("dishcategory", validateDishCategory)
	return v
}

func validateDishCategory(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Known()
}

// ValidateItems checks a catalog replacement at the store boundary: every
// dish needs an id, a name and a known category, and ids must be unique.
func ValidateItems(items []Dish) error {
	seen := make(map[string]struct{}, len(items))
	for i, d := range items {
		if err := validate.Struct(d); err != nil {
			return core.Invalid(core.CodeInvalidDish, "item %d (%q): %s", i, d.ID, describe(err))
		}
		if _, dup := seen[d.ID]; dup {
			return core.Invalid(core.CodeInvalidDish, "item %d: duplicate id %q", i, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "dishcategory":
			parts = append(parts, fmt.Sprintf("unknown category %q", fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}
