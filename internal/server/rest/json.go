package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storyshare/internal/common"
)

const maxJSONBody = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// messages overrides the default client message of a sentinel error.
type messages map[error]string

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorDuplicateUser):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, common.ErrorInvalidUpload):
		return http.StatusBadRequest, "Only image files are allowed"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Access Denied"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// fail writes err as a JSON message. Details stay in the server log.
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, err error, msgs messages) {
	status, msg := statusFor(err)
	for sentinel, m := range msgs {
		if errors.Is(err, sentinel) {
			msg = m
			break
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "status", status, "error", err)
	}
	writeMessage(w, status, msg)
}
