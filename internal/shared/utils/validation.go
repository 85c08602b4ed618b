package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	complaintvo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterValidators(validate)
}

// RegisterValidators installs JSON field naming and the domain tags
// (complaint_category, visibility, vote_direction, hostel, department) on v.
// The router calls it for gin's binding engine.
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("complaint_category", func(fl validator.FieldLevel) bool {
		_, err := complaintvo.NewCategory(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("visibility", func(fl validator.FieldLevel) bool {
		_, err := complaintvo.NewVisibility(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("vote_direction", func(fl validator.FieldLevel) bool {
		_, err := complaintvo.NewCastDirection(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("hostel", func(fl validator.FieldLevel) bool {
		_, err := uservo.NewHostel(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		_, err := uservo.NewDepartment(fl.Field().String())
		return err == nil
	})
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return BindingError(err)
	}
	return nil
}

// BindingError turns a ShouldBind or validator failure into a validation
// AppError so it renders as 400 instead of 500.
func BindingError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fe))
		}
		return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return errors.NewValidationError("Validation failed", fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}

	return errors.NewValidationError("Invalid request body")
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "complaint_category":
		return fmt.Sprintf("%s must be a known complaint category", field)
	case "visibility":
		return fmt.Sprintf("%s must be public or private", field)
	case "vote_direction":
		return fmt.Sprintf("%s must be up or down", field)
	case "hostel":
		return fmt.Sprintf("%s must be a known hostel", field)
	case "department":
		return fmt.Sprintf("%s must be a known department", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
