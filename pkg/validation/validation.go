// Package validation centraliza la validación de DTOs con go-playground/validator,
// usando las etiquetas `validate:` declaradas en los structs de entrada.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO contra sus etiquetas `validate:`.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// Message convierte un error de validación en un mensaje corto para el cliente.
// Para errores que no son de validación devuelve un genérico.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "entrada inválida"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" es requerido")
		case "email":
			parts = append(parts, fe.Field()+" debe ser un email válido")
		case "min":
			parts = append(parts, fe.Field()+" no cumple el mínimo ("+fe.Param()+")")
		case "max":
			parts = append(parts, fe.Field()+" excede el máximo ("+fe.Param()+")")
		case "oneof":
			parts = append(parts, fe.Field()+" debe ser uno de: "+fe.Param())
		case "uuid":
			parts = append(parts, fe.Field()+" debe ser un UUID válido")
		default:
			parts = append(parts, fe.Field()+" es inválido")
		}
	}
	return strings.Join(parts, "; ")
}
