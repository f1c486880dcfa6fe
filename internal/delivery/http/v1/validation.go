package v1

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report field paths by their json names so validation details
	// match the wire format, not the Go struct fields.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

type validationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// abortWithValidation renders the structured 400 body:
// {"error": "Validation failed", "details": [{"field", "message"}, ...]}.
func abortWithValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": validationDetails(err),
	})
}

func validationDetails(err error) []validationDetail {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Malformed JSON and other bind failures carry no field path.
		return []validationDetail{{Field: "body", Message: "Invalid request body"}}
	}

	details := make([]validationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, validationDetail{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "email":
		return "Invalid email address"
	case "password":
		if fe.Tag() == "min" {
			return "Password must be at least 6 characters"
		}
		return "Password is required"
	case "name":
		return "Name is required"
	case "title":
		if fe.Tag() == "max" {
			return "Title must be 100 characters or less"
		}
		return "Title is required"
	case "description":
		return "Description must be 500 characters or less"
	case "status":
		return "Status must be either PENDING or COMPLETED"
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}
