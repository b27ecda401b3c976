package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/http/response"
	"github.com/yungbote/redmane-backend/internal/services"
)

type DatasetHandler struct {
	catalog services.CatalogService
}

func NewDatasetHandler(catalog services.CatalogService) *DatasetHandler {
	return &DatasetHandler{catalog: catalog}
}

// GET /datasets/?project_id=
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	projectID, err := queryInt64(c, "project_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	datasets, err := h.catalog.ListDatasets(c.Request.Context(), projectID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, datasets)
}

// POST /datasets/
func (h *DatasetHandler) CreateDataset(c *gin.Context) {
	var req domain.NewDataset
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	dataset, err := h.catalog.CreateDataset(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, dataset)
}

// GET /datasets_with_metadata/:dataset_id?project_id=
func (h *DatasetHandler) GetDatasetWithMetadata(c *gin.Context) {
	datasetID, err := pathInt64(c, "dataset_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	projectID, err := queryInt64(c, "project_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	dataset, err := h.catalog.DatasetWithMetadata(c.Request.Context(), projectID, datasetID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, dataset)
}
