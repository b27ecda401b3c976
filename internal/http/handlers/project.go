package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/http/response"
	"github.com/yungbote/redmane-backend/internal/services"
)

type ProjectHandler struct {
	catalog services.CatalogService
}

func NewProjectHandler(catalog services.CatalogService) *ProjectHandler {
	return &ProjectHandler{catalog: catalog}
}

// GET /projects/
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.catalog.ListProjects(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, projects)
}

// POST /projects/
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req domain.NewProject
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	project, err := h.catalog.CreateProject(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, project)
}
