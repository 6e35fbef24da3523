// Package validation holds the field rules shared by the lead forms and the
// request DTOs. Validate never fails: it returns a field-name to message map,
// and an empty map means the input is valid.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Form string

const (
	FormContact Form = "contact"
	FormJoinUs  Form = "join-us"
)

const (
	TagEmail = "basic_email"
	TagPhone = "loose_phone"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]*$`)
)

type fieldRule struct {
	field   string
	tag     string
	message string
}

var formRules = map[Form][]fieldRule{
	FormContact: {
		{field: "fullName", tag: "required", message: "Full name is required"},
		{field: "email", tag: "required", message: "Email is required"},
		{field: "email", tag: TagEmail, message: "Invalid email address"},
		{field: "phone", tag: "omitempty," + TagPhone, message: "Invalid phone number"},
		{field: "message", tag: "required", message: "Message is required"},
	},
	FormJoinUs: {
		{field: "name", tag: "required", message: "Name is required"},
		{field: "email", tag: "required", message: "Email is required"},
		{field: "email", tag: TagEmail, message: "Invalid email address"},
		{field: "phone", tag: "required", message: "Phone is required"},
		{field: "phone", tag: TagPhone, message: "Invalid phone number"},
		{field: "role", tag: "required", message: "Role is required"},
		{field: "role", tag: "oneof=Employee Speaker Consultant Other", message: "Invalid role"},
		{field: "message", tag: "required", message: "Message is required"},
	},
}

var validate = mustNew()

func mustNew() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := Register(v); err != nil {
		panic("validation: " + err.Error())
	}
	return v
}

// Register installs the custom tags on v. The HTTP layer calls it on gin's
// binding engine so DTO tags and form rules agree.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
}

func Validate(form Form, fields map[string]string) map[string]string {
	errors := make(map[string]string)
	for _, r := range formRules[form] {
		if _, failed := errors[r.field]; failed {
			continue
		}
		value := strings.TrimSpace(fields[r.field])
		if err := validate.Var(value, r.tag); err != nil {
			errors[r.field] = r.message
		}
	}
	return errors
}

func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}
