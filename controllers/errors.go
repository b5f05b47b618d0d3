package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/phillip/charity-admin-go/store"
	"github.com/phillip/charity-admin-go/uploads"
)

// ValidationError is a missing or malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// bindError turns a binding or validator failure into a ValidationError.
// Every failed field is reported, joined in struct order.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fieldMessage(fe)
		}
		return &ValidationError{Field: verrs[0].Field(), Message: strings.Join(msgs, "; ")}
	case errors.As(err, &typeErr):
		return &ValidationError{Field: typeErr.Field, Message: typeMessage(typeErr.Field, typeErr.Type)}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &ValidationError{Message: "invalid JSON body"}
	case errors.As(err, &numErr):
		if numErr.Func == "ParseBool" {
			return &ValidationError{Message: fmt.Sprintf("%q is not true or false", numErr.Num)}
		}
		return &ValidationError{Message: fmt.Sprintf("%q is not a number", numErr.Num)}
	default:
		return &ValidationError{Message: "invalid request body"}
	}
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "notblank":
		return f + " cannot be empty"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", f, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return f + " is not a valid email address"
	case "finite":
		return f + " must be a number"
	case "gte":
		if fe.Param() == "0" {
			return f + " cannot be negative"
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "flexdate":
		return fmt.Sprintf("invalid %s format, use RFC3339 or YYYY-MM-DD", f)
	}
	return f + " is invalid"
}

func typeMessage(field string, t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return field + " must be a number"
	case reflect.Bool:
		return field + " must be true or false"
	case reflect.Slice:
		return field + " must be a list"
	}
	return field + " must be text"
}

// classify maps an error to its status code and client-facing message.
func classify(label string, err error) (int, string) {
	var ve *ValidationError
	var le *uploads.LimitError
	var ue *uploads.UploadError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &le):
		return http.StatusBadRequest, le.Error()
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, label + " not found"
	case errors.As(err, &ue):
		return http.StatusInternalServerError, "image upload failed: " + ue.Err.Error()
	default:
		return http.StatusInternalServerError, "could not process " + label
	}
}

// respondError writes the uniform failure envelope. Server-side failures are
// logged with the underlying cause.
func respondError(c *gin.Context, logger *zap.Logger, label string, err error) {
	status, msg := classify(label, err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}
