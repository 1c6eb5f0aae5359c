package controller

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"crudkit/internal/http/dto"
	"crudkit/internal/http/resp"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report JSON names instead of Go
// field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the request body into dst and translates decode and
// validation failures into an error body.
func bindJSON(c *gin.Context, dst any) (dto.ErrorResponse, bool) {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return dto.ErrorResponse{}, true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body := dto.ErrorResponse{Code: resp.CodeValidation, Detail: "invalid request body"}
		for _, fe := range verrs {
			body.Fields = append(body.Fields, dto.FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
		return body, false
	}
	return dto.ErrorResponse{Code: resp.CodeBadRequest, Detail: "invalid json"}, false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
