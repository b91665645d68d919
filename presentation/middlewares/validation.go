package middlewares

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type DefaultValidator struct {
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
}

var _ binding.StructValidator = &DefaultValidator{}

func (v *DefaultValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *DefaultValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *DefaultValidator) Translator() ut.Translator {
	v.lazyinit()
	return v.translator
}

func (v *DefaultValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())
		v.validate.SetTagName("binding")

		// Report fields by their JSON names, or path names for uri params.
		v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "uri"} {
				name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
				if name != "-" && name != "" {
					return name
				}
			}
			return field.Name
		})

		en := en.New()
		uni := ut.New(en, en)
		v.translator, _ = uni.GetTranslator("en")

		en_translations.RegisterDefaultTranslations(v.validate, v.translator)
		v.registerCustomTranslations()
	})
}

// Each message may use {0} for the field and {1} for the tag parameter.
var customTranslations = map[string]string{
	"required": "{0} is required",
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"email":    "{0} must be a valid email address",
	"uuid":     "{0} must be a valid UUID",
	"oneof":    "{0} must be one of [{1}]",
}

func (v *DefaultValidator) registerCustomTranslations() {
	for tag, message := range customTranslations {
		v.validate.RegisterTranslation(tag, v.translator, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field(), fe.Param())
			return t
		})
	}
}

func TranslateValidationErrors(err error) []string {
	var messages []string

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		if v, ok := binding.Validator.(*DefaultValidator); ok {
			trans := v.Translator()
			for _, e := range validationErrs {
				messages = append(messages, e.Translate(trans))
			}
		}
	}

	return messages
}

func TranslateValidationError(err error) string {
	messages := TranslateValidationErrors(err)
	if len(messages) > 0 {
		return messages[0]
	}
	return err.Error()
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()

	if valueType == reflect.Pointer {
		valueType = value.Elem().Kind()
	}

	return valueType
}
