package v1

import (
	"fmt"
	"io"
	"net/http"

	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/security"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, uploadGate gin.HandlerFunc) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/by-job/:jobId", handler.ByJob)
		candidates.GET("/by-stage/:stage", handler.ByStage)
		candidates.GET("/:id", handler.Get)
		candidates.POST("", handler.Create)
		candidates.PATCH("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
		candidates.PUT("/:id/stage", handler.MoveStage)
		candidates.POST("/:id/resume", uploadGate, handler.UploadResume)
	}
}

type MoveStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// ListCandidates godoc
// @Summary      List candidates
// @Description  Get every candidate
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Candidates", h.candidateUC.ListCandidates())
}

// ListCandidatesByJob godoc
// @Summary      List candidates of a job
// @Description  Get the candidates who applied to a job
// @Tags         candidates
// @Produce      json
// @Param        jobId  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidates/by-job/{jobId} [get]
// @Security     BearerAuth
func (h *CandidateHandler) ByJob(c *gin.Context) {
	response.Success(c, http.StatusOK, "Candidates", h.candidateUC.GetCandidatesByJob(c.Param("jobId")))
}

// ListCandidatesByStage godoc
// @Summary      List candidates in a stage
// @Description  Get the candidates in one pipeline stage
// @Tags         candidates
// @Produce      json
// @Param        stage  path  string  true  "applied, shortlisted, interview, offer, hired or rejected"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /candidates/by-stage/{stage} [get]
// @Security     BearerAuth
func (h *CandidateHandler) ByStage(c *gin.Context) {
	stage := c.Param("stage")
	if !domain.IsValidStage(stage) {
		c.Error(apperror.BadRequest("unknown pipeline stage: " + stage))
		return
	}
	response.Success(c, http.StatusOK, "Candidates", h.candidateUC.GetCandidatesByStage(stage))
}

// GetCandidate godoc
// @Summary      Get candidate
// @Description  Get a candidate by id
// @Tags         candidates
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) Get(c *gin.Context) {
	candidate, err := h.candidateUC.GetCandidate(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate", candidate)
}

// CreateCandidate godoc
// @Summary      Create candidate
// @Description  Create a candidate and bump the job's applicant counter
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body  domain.Candidate  true  "Candidate JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	var req domain.Candidate
	if !bindJSON(c, &req) {
		return
	}
	candidate, err := h.candidateUC.CreateCandidate(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created", candidate)
}

// UpdateCandidate godoc
// @Summary      Update candidate
// @Description  Apply a partial update to a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Param        candidate  body  object  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates/{id} [patch]
// @Security     BearerAuth
func (h *CandidateHandler) Update(c *gin.Context) {
	var patch domain.CandidatePatch
	if !bindJSON(c, &patch) {
		return
	}
	candidate, err := h.candidateUC.UpdateCandidate(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", candidate)
}

// DeleteCandidate godoc
// @Summary      Delete candidate
// @Description  Delete a candidate without active interviews and decrement the job counter
// @Tags         candidates
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateUC.DeleteCandidate(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate deleted", nil)
}

// MoveCandidateStage godoc
// @Summary      Move candidate to stage
// @Description  Move a candidate to another pipeline stage
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Param        stage  body  MoveStageRequest  true  "Target stage"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates/{id}/stage [put]
// @Security     BearerAuth
func (h *CandidateHandler) MoveStage(c *gin.Context) {
	var req MoveStageRequest
	if !bindJSON(c, &req) {
		return
	}
	candidate, err := h.candidateUC.MoveCandidateToStage(c.Request.Context(), c.Param("id"), req.Stage, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate moved", candidate)
}

// UploadResume godoc
// @Summary      Upload resume
// @Description  Upload a PDF, DOC or DOCX resume (max 5 MB) as multipart field "file"
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Param        file  formData  file  true  "Resume document"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /candidates/{id}/resume [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("file is required"))
		return
	}
	if fh.Size > security.MaxResumeSize {
		c.Error(apperror.BadRequest(fmt.Sprintf("resume exceeds %d MB", security.MaxResumeSize>>20)))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, security.MaxResumeSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	// A generic part type carries no information; the extension decides.
	contentType := fh.Header.Get("Content-Type")
	if contentType == "application/octet-stream" {
		contentType = ""
	}
	candidate, err := h.candidateUC.UploadResume(c.Request.Context(), c.Param("id"), domain.ResumeFile{
		Name:        fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume uploaded", candidate)
}
