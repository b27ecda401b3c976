package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/redmane-backend/internal/http/response"
	"github.com/yungbote/redmane-backend/internal/services"
)

type ClinicalHandler struct {
	catalog services.CatalogService
}

func NewClinicalHandler(catalog services.CatalogService) *ClinicalHandler {
	return &ClinicalHandler{catalog: catalog}
}

// GET /samples/:sample_id?project_id=
// sample_id 0 lists every sample of the project.
func (h *ClinicalHandler) ListSamples(c *gin.Context) {
	sampleID, err := pathInt64(c, "sample_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	projectID, err := queryInt64(c, "project_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	samples, err := h.catalog.Samples(c.Request.Context(), projectID, sampleID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, samples)
}

// GET /patients_metadata/:patient_id?project_id=
func (h *ClinicalHandler) ListPatients(c *gin.Context) {
	patientID, err := pathInt64(c, "patient_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	projectID, err := queryInt64(c, "project_id")
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	patients, err := h.catalog.Patients(c.Request.Context(), projectID, patientID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, patients)
}
