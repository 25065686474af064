package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/dsascode/dsc/internal/pkg/utils"
)

// Validation is a custom validation rule.
type Validation struct {
	Tag  string
	Func validator.Func
}

// Validate the value, rules are defined by the `validate` struct tags.
func Validate(value any, rules ...Validation) error {
	validate, enTranslator := newValidator(rules...)

	if err := validate.Struct(value); err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return processValidateError(validationErrs, enTranslator)
		default:
			panic(err)
		}
	}

	return nil
}

func newValidator(rules ...Validation) (*validator.Validate, ut.Translator) {
	validate := validator.New()

	// Register default EN translator
	enLocale := en.New()
	enTranslator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(fmt.Errorf("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(validate, enTranslator); err != nil {
		panic(fmt.Errorf("cannot register default EN translations: %w", err))
	}

	// Register custom rules
	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.Tag, rule.Func); err != nil {
			panic(fmt.Errorf(`cannot register validation rule "%s": %w`, rule.Tag, err))
		}
	}

	return validate, enTranslator
}

func processValidateError(err validator.ValidationErrors, translator ut.Translator) error {
	result := utils.NewMultiError()
	for _, e := range err {
		// Remove the name of the root struct from the namespace
		namespace := e.Namespace()
		if i := strings.IndexByte(namespace, '.'); i >= 0 {
			namespace = namespace[i+1:]
		}
		result.Append(fmt.Errorf(`key="%s": %s`, namespace, strings.TrimSpace(e.Translate(translator))))
	}
	return result.ErrorOrNil()
}
