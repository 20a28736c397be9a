/*
Package req provides helpers for HTTP request parsing and validation.

JSON bodies are decoded strictly (unknown fields and trailing data are rejected)
and then checked against their `validate` struct tags.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
)

// MaxJSONBodySize caps every JSON request body (64 KB); shared notes are the largest payload.
const MaxJSONBodySize int64 = 64 << 10

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindJSON decodes the request body into dst and validates it.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return Validate(dst)
}

// Validate runs struct-tag validation on v.
func Validate(v any) *errs.CustomError {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			logx.Debug("Request validation failed", "field", fieldErrs[0].Namespace(), "rule", fieldErrs[0].Tag())
		}
		return errs.NewError(errs.ErrInvalidParams)
	}
	return nil
}

// IntParam reads a positive integer chi URL parameter.
func IntParam(r *http.Request, name string) (int, *errs.CustomError) {
	raw := chi.URLParam(r, name)

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, errs.NewError(errs.ErrInvalidParams)
	}

	return value, nil
}
