package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/core/ports"
)

type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// skillList accepts either a JSON array of strings or a single
// comma-separated string such as "Go, Rust".
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = strings.Split(raw, ",")
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

type updateProfileRequest struct {
	FreelancerID string    `json:"freelancerId" validate:"required"`
	Skills       skillList `json:"skills"`
	UpdateSkills skillList `json:"updateSkills"`
	Description  string    `json:"description" validate:"max=2000"`
}

func (r updateProfileRequest) skills() []string {
	if r.Skills != nil {
		return r.Skills
	}
	return r.UpdateSkills
}

// Fetch returns the freelancer profile owned by a user.
//
// @Summary      Fetch a freelancer profile
// @Tags         freelancers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.FreelancerProfile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /fetch-freelancer/{id} [get]
func (h *ProfileHandler) Fetch(c echo.Context) error {
	profile, err := h.profileService.FetchProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update replaces a profile's skills and description. Only the owner or an
// admin may update a profile.
//
// @Summary      Update a freelancer profile
// @Tags         freelancers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile changes"
// @Success      200   {object}  domain.FreelancerProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /update-freelancer [post]
func (h *ProfileHandler) Update(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), session, ports.UpdateProfileInput{
		FreelancerID: req.FreelancerID,
		Skills:       req.skills(),
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
