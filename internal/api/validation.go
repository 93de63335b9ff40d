package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies; every request type here is a handful of integers.
const maxBodyBytes = 1 << 16

var requestValidate = validator.New(validator.WithRequiredStructEnabled())

// decodeRequest reads an optional JSON body into dst and validates it.
// An empty body leaves dst untouched.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("unable to parse JSON payload: %w", err)
	}
	if err := requestValidate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	if fe.Param() != "" {
		return fmt.Errorf("%s must satisfy %s=%s", lowerFirst(fe.Field()), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%s is %s", lowerFirst(fe.Field()), fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
