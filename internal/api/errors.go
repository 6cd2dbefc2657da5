package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"reflect"  // Struct tag lookup
	"strings"  // String manipulation

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin binding validator
	"github.com/go-playground/validator/v10" // Field validation errors
	"github.com/sirupsen/logrus"             // Logging library
	"gorm.io/gorm"                           // GORM ORM library

	"realty_portal/internal/upsert" // Schema validation errors
)

func init() {
	// Report binding errors under the JSON or form name clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName returns the json or form tag of a struct field
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// fieldMessage describes one failed binding rule
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	}
	return "Invalid value."
}

// respondValidation writes a 400 with per-field detail
func respondValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fields})
}

// respondBindError maps gin binding failures to a 400
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		respondValidation(c, fields)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"}) // Malformed body
}

// respondStoreError maps persistence errors to a status code; unexpected ones are logged
func respondStoreError(c *gin.Context, err error, action string) {
	if verr, ok := upsert.AsValidationError(err); ok {
		respondValidation(c, verr.Fields)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}
	logrus.WithFields(logrus.Fields{
		"action": action,
		"path":   c.FullPath(),
	}).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
}
