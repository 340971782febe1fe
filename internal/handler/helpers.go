package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/NamelessIII/api-webscrap/internal/dto"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their query-string name ("data-inicio"), not the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "data", func(fl validator.FieldLevel) bool {
		_, err := dto.ParseData(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "pagina", func(fl validator.FieldLevel) bool {
		_, err := dto.ParsePage(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "farmacias", func(fl validator.FieldLevel) bool {
		_, err := dto.ParseFarmaciaIDs(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// validationFields runs the struct tags of req and returns field → messages,
// or nil when req is valid.
func validationFields(req interface{}) (map[string][]string, error) {
	err := validate.Struct(req)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], mensagem(fe))
	}
	return fields, nil
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("O campo %s não pode ter mais de %s caracteres.", fe.Field(), fe.Param())
	case "data":
		return fmt.Sprintf("O campo %s não é uma data válida.", fe.Field())
	case "pagina":
		return fmt.Sprintf("O campo %s deve ser um número inteiro maior ou igual a 1.", fe.Field())
	case "farmacias":
		return fmt.Sprintf("O campo %s deve conter IDs numéricos separados por espaço.", fe.Field())
	}
	return fmt.Sprintf("O campo %s é inválido.", fe.Field())
}
