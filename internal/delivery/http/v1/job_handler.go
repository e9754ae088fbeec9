package v1

import (
	"net/http"

	"go-hiring-sync/internal/delivery/http/middleware"
	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.Get)
	}

	manage := jobs.Group("", middleware.RequireRole(domain.RoleAdmin, domain.RoleHR))
	{
		manage.POST("", handler.Create)
		manage.PATCH("/:id", handler.Update)
		manage.DELETE("/:id", handler.Delete)
		manage.POST("/:id/recount", handler.Recount)
		manage.POST("/reconcile", handler.Reconcile)
	}
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Get every job, newest first
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Jobs", h.jobUC.ListJobs())
}

// GetJob godoc
// @Summary      Get job
// @Description  Get a job by id
// @Tags         jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job", job)
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting (Admin/HR only). Any applicant count in the body is ignored; the counter starts at 0.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body  domain.Job  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.Job
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.jobUC.CreateJob(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Update job
// @Description  Apply a partial update to a job (Admin/HR only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Param        job  body  object  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var patch domain.JobPatch
	if !bindJSON(c, &patch) {
		return
	}
	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete job
// @Description  Delete a job (Admin/HR only)
// @Tags         jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// RecountApplicants godoc
// @Summary      Recount applicants
// @Description  Recompute the applicant counter of one job from its candidates (Admin/HR only)
// @Tags         jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs/{id}/recount [post]
// @Security     BearerAuth
func (h *JobHandler) Recount(c *gin.Context) {
	job, err := h.jobUC.RecomputeApplicantCount(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicant count recomputed", job)
}

// ReconcileApplicants godoc
// @Summary      Reconcile all applicant counters
// @Description  Recompute every job's applicant counter and report how many were fixed (Admin/HR only)
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs/reconcile [post]
// @Security     BearerAuth
func (h *JobHandler) Reconcile(c *gin.Context) {
	fixed, err := h.jobUC.ReconcileApplicantCounts(c.Request.Context(), actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicant counts reconciled", gin.H{"fixed": fixed})
}
