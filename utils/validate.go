package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs validator tags over a request payload and flattens the
// failures into a field -> rule map for the 422 response body. Returns nil
// when the payload is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": "invalid"}
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Namespace()] = fe.Tag()
	}
	return fields
}
