// internal/players/contact.go
package players

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/codr1/courtslots/internal/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Contact is the identity snapshot a caller supplies when booking or joining a waitlist.
type Contact struct {
	FirstName string `json:"first_name" validate:"required,max=80"`
	LastName  string `json:"last_name" validate:"required,max=80"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

// Normalize trims every field, lowercases the email, validates the result and
// rewrites the phone number in E.164 form using region as the default country.
func (c Contact) Normalize(region string) (Contact, error) {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = NormalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)

	if err := validate.Struct(c); err != nil {
		return Contact{}, validationError(err)
	}

	phone, err := NormalizePhone(c.Phone, region)
	if err != nil {
		return Contact{}, err
	}
	c.Phone = phone
	return c, nil
}

// DisplayName is "First Last".
func (c Contact) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeAccessCode makes code lookups case-insensitive.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizePhone returns raw in E.164 form. An empty number stays empty.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", apperr.InvalidFields("invalid contact", map[string]string{"phone": "invalid phone number"})
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.Invalid("invalid contact")
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[jsonFieldName(fe.Field())] = fe.Tag()
	}
	return apperr.InvalidFields("invalid contact", fields)
}

func jsonFieldName(field string) string {
	switch field {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Email":
		return "email"
	case "Phone":
		return "phone"
	default:
		return strings.ToLower(field)
	}
}
