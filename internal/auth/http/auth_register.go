package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Sets the real password for an OTP-verified account and returns the first session token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest		true	"Email plus new password and confirmation"
//	@Success		200		{object}	domain.TokenPair	"accessToken, refreshToken"
//	@Failure		400		{object}	httpx.Problem		"Invalid input or mismatched passwords"
//	@Failure		403		{object}	httpx.Problem		"Email not verified"
//	@Failure		404		{object}	httpx.Problem		"User not found"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest(err.Error()))
		return
	}

	pair, err := h.AuthService.CreatePassword(r.Context(), req.Email, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
