package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate valida a struct conforme as tags `validate`
func Validate[T any](value T) (T, error) {
	if err := validate.Struct(value); err != nil {
		return value, ValidationErrorToString(value, err)
	}

	return value, nil
}

func ValidationErrorToString(input any, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s' (%s)", fe.StructField(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("%T inválido: %s", input, strings.Join(msgs, "; "))
	}

	return err
}
