package http

import (
	"net/http"

	"github.com/kroyahq/kroya/internal/auth/service"
	"github.com/kroyahq/kroya/pkg/httpx"
)

type SaveUserInfoHandler struct {
	AuthService *service.AuthService
}

type saveUserInfoRequest struct {
	Email       string `json:"email" validate:"required,email"`
	UserName    string `json:"userName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Address     string `json:"address"`
}

// ServeHTTP godoc
//
//	@Summary		Save User Info Endpoint
//	@Description	Stores the display name, phone number and address collected during onboarding.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		saveUserInfoRequest	true	"Profile fields"
//	@Success		200		{object}	messageResponse		"message"
//	@Failure		400		{object}	httpx.Problem		"Invalid input"
//	@Failure		404		{object}	httpx.Problem		"User not found"
//	@Router			/v1/auth/save-user-info [post].
func (h *SaveUserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req saveUserInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteProblem(w, httpx.ProblemBadRequest(err.Error()))
		return
	}

	err := h.AuthService.SaveProfile(r.Context(), req.Email, req.UserName, req.PhoneNumber, req.Address)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Profile saved"})
}
