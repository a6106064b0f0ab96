package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type CheckEmailHandler struct {
	AuthService *service.AuthService
}

type checkEmailResponse struct {
	Exists bool `json:"exists"`
}

// ServeHTTP godoc
//
//	@Summary		Check Email Endpoint
//	@Description	Confirms an account already exists for the given email address; unknown emails are 404.
//	@Tags			Auth
//	@Produce		json
//	@Param			email	query		string				true	"Email address to check"
//	@Success		200		{object}	checkEmailResponse	"exists"
//	@Failure		400		{object}	httpx.Problem		"Invalid input"
//	@Failure		404		{object}	httpx.Problem		"User not found"
//	@Router			/v1/auth/check-email-exist [get].
func (h *CheckEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := validate.Var(email, "required,email"); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest("email must be a valid email"))
		return
	}

	if err := h.AuthService.CheckEmailExists(r.Context(), email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkEmailResponse{Exists: true})
}
