package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revokes every live session for the authenticated caller.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	messageResponse	"message"
//	@Failure		401	{object}	httpx.Problem	"Missing or invalid bearer token"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteProblem(w, httpx.ProblemUnauthorized("unauthorized", "Authentication required"))
		return
	}

	if err := h.AuthService.Logout(r.Context(), id.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}
