package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type messageResponse struct {
	Message string `json:"message"`
}

type SendOtpHandler struct {
	OtpService *service.OtpService
}

// ServeHTTP godoc
//
//	@Summary		Send OTP Endpoint
//	@Description	Generates a 6-digit verification code for the email and delivers it by email. A new code replaces any previous one.
//	@Tags			Auth
//	@Produce		json
//	@Param			email	query		string			true	"Email address to verify"
//	@Success		200		{object}	messageResponse	"message"
//	@Failure		400		{object}	httpx.Problem	"Invalid input"
//	@Failure		500		{object}	httpx.Problem	"Delivery failed"
//	@Router			/v1/auth/send-otp [post].
func (h *SendOtpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := validate.Var(email, "required,email"); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest("email must be a valid email"))
		return
	}

	if err := h.OtpService.Generate(r.Context(), email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Verification code sent"})
}

type ValidateOtpHandler struct {
	OtpService *service.OtpService
}

// ServeHTTP godoc
//
//	@Summary		Validate OTP Endpoint
//	@Description	Checks a submitted verification code. On success the account is provisioned (or marked verified) so registration can set the real password.
//	@Tags			Auth
//	@Produce		json
//	@Param			email	query		string			true	"Email address being verified"
//	@Param			otp		query		string			true	"6-digit verification code"
//	@Success		200		{object}	messageResponse	"message"
//	@Failure		400		{object}	httpx.Problem	"Invalid, expired or mismatched code"
//	@Failure		404		{object}	httpx.Problem	"No code on record"
//	@Router			/v1/auth/validate-otp [post].
func (h *ValidateOtpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("otp")
	if err := validate.Var(email, "required,email"); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest("email must be a valid email"))
		return
	}
	if err := validate.Var(code, "required,len=6,numeric"); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest("otp must be a 6-digit code"))
		return
	}

	if err := h.OtpService.Validate(r.Context(), email, code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Email verified"})
}
