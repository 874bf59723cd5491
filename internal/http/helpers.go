package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"crediario/internal/core"
	"crediario/internal/log"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes {"error": "..."}.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", log.NewFields().WithError(err).ToSlice()...)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateCustomer):
		return http.StatusConflict
	case errors.As(err, &verrs), isDomainValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func isDomainValidation(err error) bool {
	for _, target := range []error{
		core.ErrEmptyName, core.ErrEmptyDescription, core.ErrInvalidAmount,
		core.ErrNegativeRate, core.ErrInvalidStatus, core.ErrInvalidType,
		core.ErrInvalidCategory, core.ErrInvalidDate, core.ErrZeroDate, core.ErrTextTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeJSON reads a bounded JSON body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: body too large", errBadRequest)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return validationError{verrs}
		}
		return err
	}
	return nil
}

// validationError renders validator failures as "field: rule" pairs.
type validationError struct {
	validator.ValidationErrors
}

func (e validationError) Error() string {
	parts := make([]string, 0, len(e.ValidationErrors))
	for _, fe := range e.ValidationErrors {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fe.Field()+": "+rule)
	}
	return strings.Join(parts, ", ")
}

func (e validationError) Unwrap() error {
	return e.ValidationErrors
}

// parseYearMonth reads ?year= and ?month=, defaulting to the month of now.
func parseYearMonth(r *http.Request, now time.Time) (year, month int, err error) {
	year, month = now.Year(), int(now.Month())
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		if year, err = strconv.Atoi(v); err != nil || year < 1 || year > 9999 {
			return 0, 0, fmt.Errorf("%w: invalid year %q", errBadRequest, v)
		}
	}
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			return 0, 0, fmt.Errorf("%w: invalid month %q", errBadRequest, v)
		}
	}
	return year, month, nil
}

// sanitizeInput removes control characters other than tab and newlines and
// trims whitespace.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeInput(*s)
	return &v
}
