package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

var knownBelts = map[models.Belt]struct{}{
	models.BeltWhite: {}, models.BeltGrey: {}, models.BeltYellow: {}, models.BeltOrange: {},
	models.BeltGreen: {}, models.BeltBlue: {}, models.BeltPurple: {}, models.BeltBrown: {},
	models.BeltBlack: {}, models.BeltCoral: {}, models.BeltRedAndWhite: {}, models.BeltRed: {},
}

var knownMethods = map[models.PaymentMethod]struct{}{
	models.MethodCash: {}, models.MethodPix: {}, models.MethodCreditCard: {},
	models.MethodDebitCard: {}, models.MethodBankTransfer: {},
}

// NewValidator returns a validator aware of the academy's enumerations.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("belt", func(fl validator.FieldLevel) bool {
		_, ok := knownBelts[models.Belt(fl.Field().String())]
		return ok
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		_, ok := knownMethods[models.PaymentMethod(fl.Field().String())]
		return ok
	})
	return v
}

// FieldErrors maps each invalid field to a Portuguese message for form display.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	case "min":
		return fmt.Sprintf("Mínimo de %s", fe.Param())
	case "len":
		return fmt.Sprintf("Deve ter %s caracteres", fe.Param())
	case "numeric":
		return "Apenas números"
	case "datetime":
		return fmt.Sprintf("Formato esperado %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Deve ser maior que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Deve ser maior ou igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Deve ser menor ou igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor deve ser um de: %s", fe.Param())
	case "belt":
		return "Faixa inválida"
	case "payment_method":
		return "Forma de pagamento inválida"
	case "url":
		return "URL inválida"
	case "unique":
		return "Valores repetidos"
	}
	return "Valor inválido"
}
