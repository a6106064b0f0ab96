package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
	"github.com/kroyahq/kroya/pkg/slogx"
)

// writeServiceError maps service sentinels to problem responses. Anything
// unmapped is an internal error; its detail is logged, not leaked.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteProblem(w, httpx.ProblemNotFound("user-not-found", "User not found"))
	case errors.Is(err, service.ErrIncorrectPassword):
		httpx.WriteProblem(w, httpx.ProblemUnauthorized("incorrect-password", "Incorrect password"))
	case errors.Is(err, service.ErrPasswordMismatch):
		httpx.WriteProblem(w, httpx.ProblemBadRequest("Passwords do not match"))
	case errors.Is(err, service.ErrEmailNotVerified):
		httpx.WriteProblem(w, httpx.ProblemForbidden("Email is not verified"))
	case errors.Is(err, service.ErrOtpNotFound):
		httpx.WriteProblem(w, httpx.ProblemNotFound("otp-not-found", "No verification code found for this email"))
	case errors.Is(err, service.ErrOtpExpired):
		httpx.WriteProblem(w, httpx.NewProblem(http.StatusBadRequest, "otp-expired", "Invalid Code", "Verification code has expired"))
	case errors.Is(err, service.ErrOtpMismatch):
		httpx.WriteProblem(w, httpx.NewProblem(http.StatusBadRequest, "otp-mismatch", "Invalid Code", "Verification code is incorrect"))
	case errors.Is(err, service.ErrMissingAuthHeader):
		httpx.WriteProblem(w, httpx.ProblemUnauthorized("unauthorized", "Missing or invalid Authorization header"))
	case errors.Is(err, service.ErrInvalidTokenUser):
		httpx.WriteProblem(w, httpx.ProblemUnauthorized("unauthorized", "Invalid token or user not found"))
	case errors.Is(err, service.ErrNoUserInfo):
		httpx.WriteProblem(w, httpx.ProblemUnauthorized("unauthorized", "Invalid token: No user information"))
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteProblem(w, httpx.ProblemInternal("Something went wrong"))
	}
}

// decodeJSON reads and validates a JSON request body into req.
func decodeJSON(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return errors.New("request body must be valid JSON")
	}
	return checkRequest(req)
}
