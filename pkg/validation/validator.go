package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIdentifierLength = 64

	// Regular expressions
	idPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

func init() {
	validate = validator.New()
}

// ValidateStruct validates any struct using its validate tags.
func ValidateStruct(s any) error {
	if s == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateIdentifier validates a model element identifier such as a
// compartment, species, reaction or enzyme id.
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", kind)
	}
	if len(id) > MaxIdentifierLength {
		return fmt.Errorf("%s id '%s' exceeds maximum length of %d characters", kind, id, MaxIdentifierLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%s id '%s' is invalid (must start with letter or underscore, followed by alphanumeric or underscore)", kind, id)
	}
	return nil
}

// ValidateRoles validates the three special compartment roles used to wire
// the organism: each must be a valid identifier and they must be distinct.
func ValidateRoles(extracellular, periplasm, cytoplasm string) error {
	if err := ValidateIdentifier("extracellular compartment", extracellular); err != nil {
		return err
	}
	if err := ValidateIdentifier("periplasm compartment", periplasm); err != nil {
		return err
	}
	if err := ValidateIdentifier("cytoplasm compartment", cytoplasm); err != nil {
		return err
	}
	if extracellular == periplasm || extracellular == cytoplasm || periplasm == cytoplasm {
		return fmt.Errorf("compartment roles must be distinct, got extracellular=%s periplasm=%s cytoplasm=%s",
			extracellular, periplasm, cytoplasm)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
