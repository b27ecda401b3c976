package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/redmane-backend/internal/data/aggregates"
	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/http/response"
	"github.com/yungbote/redmane-backend/internal/platform/ctxutil"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
	"github.com/yungbote/redmane-backend/internal/services"
)

type RawFileHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
	files   aggregates.RawFileAggregate
}

func NewRawFileHandler(log *logger.Logger, catalog services.CatalogService, files aggregates.RawFileAggregate) *RawFileHandler {
	return &RawFileHandler{
		log:     log.With("handler", "RawFileHandler"),
		catalog: catalog,
		files:   files,
	}
}

type addRawFilesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	domain.SubmitResult
}

// POST /add_raw_files/
func (h *RawFileHandler) AddRawFiles(c *gin.Context) {
	var reqs []domain.RawFileRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ctx := c.Request.Context()
	res, err := h.files.AddRawFiles(ctx, reqs)
	if err != nil {
		h.log.Warn("add raw files failed", append(ctxutil.LogFields(ctx), "files", len(reqs), "error", err)...)
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, addRawFilesResponse{
		Status:       "success",
		Message:      fmt.Sprintf("%d raw files added, %d already registered", res.Created, res.Skipped),
		SubmitResult: res,
	})
}

// PUT /datasets_metadata/size_update
func (h *RawFileHandler) UpdateDatasetSize(c *gin.Context) {
	var req domain.SizeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.files.UpdateDatasetSize(c.Request.Context(), req); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, response.StatusEnvelope{
		Status:  "success",
		Message: fmt.Sprintf("dataset %d size updated", req.DatasetID),
	})
}

// GET /raw_files/?dataset_id=
func (h *RawFileHandler) ListRawFiles(c *gin.Context) {
	datasetID, err := queryInt64(c, "dataset_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	files, err := h.catalog.RawFiles(c.Request.Context(), datasetID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, files)
}
