package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Refresh Token Endpoint
//	@Description	Exchanges a refresh token, sent as the bearer Authorization header, for a brand new token pair. Prior sessions are revoked exactly as on login.
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header		string				true	"Bearer {refreshToken}"
//	@Success		200				{object}	domain.TokenPair	"accessToken, refreshToken"
//	@Failure		401				{object}	httpx.Problem		"Missing header, invalid token, or unknown user"
//	@Router			/v1/auth/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pair, err := h.AuthService.Refresh(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}
