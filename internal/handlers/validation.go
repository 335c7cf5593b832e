package handlers

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	registerOnce    sync.Once
)

// registerValidators installs the custom binding rules on gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("handlers: gin validator engine is not go-playground/validator")
		}
		err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		if err != nil {
			panic("handlers: register username validation: " + err.Error())
		}
	})
}

// trimmed is a JSON string whose surrounding whitespace is dropped while
// decoding, so length rules see the value that gets stored.
type trimmed string

func (t *trimmed) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = trimmed(strings.TrimSpace(s))
	return nil
}
