package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Struct tags backed by the predicates in this package.
const (
	TagIndividualTaxID = "taxid_individual"
	TagCorporateTaxID  = "taxid_corporate"
	TagFullName        = "fullname"
	TagURL             = "weburl"
	TagEmail           = "mailbox"
	TagPhone           = "phone_br"
	TagPostalCode      = "cep"
	TagInvoiceName     = "invoice_name"
)

var tagPredicates = map[string]func(string) bool{
	TagIndividualTaxID: ValidIndividualTaxID,
	TagCorporateTaxID:  ValidCorporateTaxID,
	TagFullName:        ValidFullName,
	TagURL:             ValidURL,
	TagEmail:           ValidEmail,
	TagPhone:           ValidPhone,
	TagPostalCode:      ValidPostalCode,
	TagInvoiceName:     ValidInvoiceName,
}

// New returns a validator with every predicate of this package registered as a
// tag. Field errors report the json name of the field.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, pred := range tagPredicates {
		// registration only fails on an empty tag name
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return pred(fl.Field().String())
		})
	}
	return v
}

// FieldError is one inline, field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors flattens a validator error into FieldErrors. Errors that are not
// validation errors yield nil.
func FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: Message(fe)})
	}
	return out
}

// Message converts a single FieldError into a human-readable message.
func Message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case TagIndividualTaxID:
		return field + " must have 11 digits"
	case TagCorporateTaxID:
		return field + " must have 14 digits"
	case TagFullName:
		return field + " must contain first and last name"
	case TagURL:
		return field + " must be a valid http(s) URL"
	case TagEmail:
		return field + " must be a valid email"
	case TagPhone:
		return field + " must have 11 digits"
	case TagPostalCode:
		return field + " must have 8 digits"
	case TagInvoiceName:
		return field + " must have between 1 and 12 characters"
	default:
		return field + " is invalid"
	}
}
