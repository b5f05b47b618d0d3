package controllers

import (
	"errors"
	"io"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	utils "github.com/phillip/charity-admin-go/utils"
)

var registerValidators sync.Once

// setupValidator adds the tags the input structs use to gin's validator and
// makes errors name fields by their request key.
func setupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	_ = v.RegisterValidation("flexdate", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true
		}
		_, err := utils.ParseDate(s)
		return err == nil
	})
}

// bind decodes the body into obj with the binding its Content-Type selects
// and validates the binding tags. An empty JSON body binds nothing but is
// still validated, so required fields are reported.
func bind(c *gin.Context, obj any) error {
	registerValidators.Do(setupValidator)

	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		return bindError(err)
	}
	return nil
}
