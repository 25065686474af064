package validator

import (
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Name string `validate:"required"`
	Url  string `validate:"omitempty,url"`
	Type string `validate:"required,oneof=http kaggle"`
}

func TestValidateOk(t *testing.T) {
	t.Parallel()
	value := testStruct{Name: "foo", Url: "https://example.com", Type: "http"}
	assert.NoError(t, Validate(value))
}

func TestValidateRequired(t *testing.T) {
	t.Parallel()
	value := testStruct{Type: "http"}
	err := Validate(value)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `key="Name"`)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateMultipleErrors(t *testing.T) {
	t.Parallel()
	value := testStruct{Url: "not-an-url", Type: "ftp"}
	err := Validate(value)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `key="Name"`)
	assert.Contains(t, err.Error(), `key="Url"`)
	assert.Contains(t, err.Error(), `key="Type"`)
}

func TestValidateCustomRule(t *testing.T) {
	t.Parallel()
	type withCustom struct {
		Value string `validate:"notfoo"`
	}

	rule := Validation{
		Tag: "notfoo",
		Func: func(fl goValidator.FieldLevel) bool {
			return fl.Field().String() != "foo"
		},
	}

	assert.NoError(t, Validate(withCustom{Value: "bar"}, rule))
	assert.Error(t, Validate(withCustom{Value: "foo"}, rule))
}
