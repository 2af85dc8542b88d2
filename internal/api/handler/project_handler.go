package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/api/metrics"
	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Budget      int64    `json:"budget" validate:"gte=0"`
	Skills      []string `json:"skills"`
}

type updateStatusRequest struct {
	Status       string `json:"status" validate:"required"`
	FreelancerID string `json:"freelancerId"`
}

// List returns all projects, optionally filtered.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        status        query     string  false  "Pending, In Progress or Completed"
// @Param        clientId      query     string  false  "Owning client"
// @Param        freelancerId  query     string  false  "Assigned freelancer"
// @Param        search        query     string  false  "Substring of title or description"
// @Success      200  {array}   domain.Project
// @Failure      400  {object}  map[string]string
// @Router       /fetch-projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	filter := ports.ProjectFilter{
		ClientID:     c.QueryParam("clientId"),
		FreelancerID: c.QueryParam("freelancerId"),
		Search:       c.QueryParam("search"),
	}
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status, err := domain.ParseProjectStatus(raw)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

// Get returns a single project.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create posts a new project owned by the calling client.
//
// @Summary      Post a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), session, ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, project)
}

// UpdateStatus moves a project along Pending → In Progress → Completed.
//
// @Summary      Change project status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.UpdateStatus(c.Request().Context(), session, c.Param("id"), ports.UpdateStatusInput{
		Status:       req.Status,
		FreelancerID: req.FreelancerID,
	})
	if err != nil {
		return err
	}

	metrics.ProjectTransitionsTotal.WithLabelValues(string(project.Status)).Inc()
	return c.JSON(http.StatusOK, project)
}
