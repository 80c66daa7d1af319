package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidBody  = "Invalid request body"
	msgNameRequired = "Name is required and must be a string"
	msgEmailInvalid = "Valid email is required"
)

type createUserBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,contains=@"`
}

// ValidateCreateUser checks the fields POST /users cannot do without before the
// controller sees the request. The body stays cached on the context, so
// handlers must bind it again with ShouldBindBodyWith.
func ValidateCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body createUserBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": createUserMessage(err)})
			return
		}
		c.Next()
	}
}

func createUserMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fieldMessage(typeErr.Field)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return fieldMessage(validationErrs[0].Field())
	}

	return msgInvalidBody
}

func fieldMessage(field string) string {
	switch field {
	case "name", "Name":
		return msgNameRequired
	case "email", "Email":
		return msgEmailInvalid
	}
	return msgInvalidBody
}
