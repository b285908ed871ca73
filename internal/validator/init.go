package validator

import (
	"ctchen222/tictactoe-history/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("cell", validateCell); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// validateCell accepts a board cell index.
func validateCell(fl validator.FieldLevel) bool {
	cell := fl.Field().Int()
	return cell >= 0 && cell < game.CellCount
}
