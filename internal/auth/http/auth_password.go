package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type ResetPasswordHandler struct {
	AuthService *service.AuthService
}

type resetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ServeHTTP godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Replaces the account password after OTP verification and revokes every live session.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		resetPasswordRequest	true	"Email plus new password and confirmation"
//	@Success		200		{object}	messageResponse			"message"
//	@Failure		400		{object}	httpx.Problem			"Invalid input or mismatched passwords"
//	@Failure		404		{object}	httpx.Problem			"User not found"
//	@Router			/v1/auth/reset-password [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest(err.Error()))
		return
	}

	err := h.AuthService.ResetPassword(r.Context(), req.Email, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Password reset"})
}
