package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator wraps a shared validator instance for request bodies.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ParseBody parses the request body into out and validates its tags. When
// the request is bad it writes the error response and returns ok=false; the
// handler returns err and stops.
func (v *Validator) ParseBody(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if parseErr := c.BodyParser(out); parseErr != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"msg":   parseErr.Error(),
		})
	}

	if valErr := v.validate.Struct(out); valErr != nil {
		fields := make(map[string]string)
		for _, fieldErr := range valErr.(validator.ValidationErrors) {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fields,
		})
	}

	return true, nil
}
