package http

import (
	"net/http"
	"time"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
	"github.com/kroyahq/kroya/pkg/slogx"
)

type MeHandler struct {
	AuthService *service.AuthService
}

type meResponse struct {
	UserID          string     `json:"userId"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName"`
	PhoneNumber     string     `json:"phoneNumber"`
	Location        string     `json:"location"`
	Role            string     `json:"role"`
	EmailVerified   bool       `json:"emailVerified"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ServeHTTP godoc
//
//	@Summary		Get Current User Endpoint
//	@Description	Returns the authenticated caller's profile.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	meResponse		"Profile fields"
//	@Failure		401	{object}	httpx.Problem	"Missing or invalid bearer token"
//	@Failure		500	{object}	httpx.Problem	"Internal server error"
//	@Router			/v1/users/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteProblem(w, httpx.ProblemUnauthorized("unauthorized", "Authentication required"))
		return
	}

	user, err := h.AuthService.GetUser(ctx, id.UserID)
	if err != nil {
		log.Warn("failed to load user", "user_id", id.UserID, "err", err)
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meResponse{
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		PhoneNumber:     user.PhoneNumber,
		Location:        user.Location,
		Role:            user.Role.String(),
		EmailVerified:   user.EmailVerified,
		EmailVerifiedAt: user.EmailVerifiedAt,
		CreatedAt:       user.CreatedAt,
	})
}
