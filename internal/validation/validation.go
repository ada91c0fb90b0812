// Package validation validates decoded request payloads and reports
// per-field messages keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	usernameTag   = "username"
	usernameText  = "only letters, digits, underscores, dots and hyphens are allowed"
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

	requiredTag  = "required"
	requiredText = "this field is required"

	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"
)

// Error reports invalid fields. Fields maps JSON field names to messages.
type Error struct {
	Message string
	Fields  map[string]string
}

// NewError returns an Error for a single field.
func NewError(field, msg string) *Error {
	return &Error{Message: msg, Fields: map[string]string{field: msg}}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// AsError unwraps err into a validation Error.
func AsError(err error) (*Error, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// Validator checks struct tags and translates failures into English messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New returns a Validator with the portal's custom tags registered.
func New() *Validator {
	locale := en.New()
	translator, _ := ut.New(locale, locale).GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(usernameTag, func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	registerTranslation(validate, translator, usernameTag, usernameText, false)

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	registerTranslation(validate, translator, notBlankTag, notBlankText, false)

	registerTranslation(validate, translator, requiredTag, requiredText, true)

	return &Validator{validate: validate, translator: translator}
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s and returns an *Error describing every invalid field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	return &Error{Fields: fields}
}
