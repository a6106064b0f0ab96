package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password. Revokes any prior sessions and returns a fresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest		true	"Credentials"
//	@Success		200		{object}	domain.TokenPair	"accessToken, refreshToken"
//	@Failure		400		{object}	httpx.Problem		"Invalid input"
//	@Failure		401		{object}	httpx.Problem		"Incorrect password"
//	@Failure		404		{object}	httpx.Problem		"User not found"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest(err.Error()))
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
