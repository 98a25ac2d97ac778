// Package bind decodes and validates JSON request bodies
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator pairs the validator with its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

var shared = sync.OnceValue(func() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterTranslation("required", trans,
		func(t ut.Translator) error { return t.Add("required", "{0} is required", true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("required", fe.Field())
			return msg
		},
	)
	return &Validator{V: v, Trans: trans}
})

// Shared returns the process wide validator
func Shared() *Validator { return shared() }

// messages name fields by their json tag
func jsonName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch tag {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return tag
}

// JSONOptions controls body parsing
// the zero value reads any size and accepts unknown fields
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// Strict is the default: 1MB, unknown fields rejected, body required
var Strict = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes one JSON value into T and validates it
// failures are JSON or validation errors carrying the offending field
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := Strict
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Debug().Err(err).Msg("close request body")
		}
	}()

	var body io.Reader = r.Body
	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); err != nil {
		if o.AllowEmptyBody {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(br)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Shared().V.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			// T is not a struct, nothing to validate
			return dst, nil
		}
		field, msg := FirstError(err)
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return dst, nil
}

// FirstError returns the field and translated message of the first failure
func FirstError(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Shared().Trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
