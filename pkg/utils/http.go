package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func DecodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ErrorResponse is the machine-readable failure envelope.
// swagger:model ErrorResponse
type ErrorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

func WriteError(w http.ResponseWriter, errCode string, status int) error {
	return WriteJSON(w, ErrorResponse{OK: false, Error: errCode}, status)
}

// WriteValidationError reports INVALID_PAYLOAD with a field→rule map when
// the error comes from the validator.
func WriteValidationError(w http.ResponseWriter, err error) error {
	res := ErrorResponse{OK: false, Error: "INVALID_PAYLOAD"}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		res.Detail = fields
	}

	return WriteJSON(w, res, http.StatusBadRequest)
}
