package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/buildsite/fundledger/internal/core/ports/services"
	"github.com/buildsite/fundledger/internal/dto"
	"github.com/buildsite/fundledger/internal/middleware"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// registerProjectRoutes registers routes related to projects.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
	}
}

func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProject", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor := middleware.GetActorFromContext(c)

	project, err := h.projectService.CreateProject(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": dto.ToProjectResponses(projects)})
}
