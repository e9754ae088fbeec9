package v1

import (
	"net/http"
	"time"

	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
	now         func() time.Time
}

func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase, now func() time.Time) {
	handler := &InterviewHandler{interviewUC: interviewUC, now: now}

	interviews := r.Group("/interviews")
	{
		interviews.GET("", handler.List)
		interviews.GET("/upcoming", handler.Upcoming)
		interviews.GET("/by-candidate/:id", handler.ByCandidate)
		interviews.GET("/by-interviewer/:id", handler.ByInterviewer)
		interviews.GET("/:id", handler.Get)
		interviews.POST("", handler.Create)
		interviews.PATCH("/:id", handler.Update)
		interviews.DELETE("/:id", handler.Delete)
	}
}

// ListInterviews godoc
// @Summary      List interviews
// @Description  Get every interview
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Interviews", h.interviewUC.ListInterviews())
}

// ListUpcomingInterviews godoc
// @Summary      List upcoming interviews
// @Description  Get scheduled interviews in the future, nearest first
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /interviews/upcoming [get]
// @Security     BearerAuth
func (h *InterviewHandler) Upcoming(c *gin.Context) {
	response.Success(c, http.StatusOK, "Upcoming interviews", h.interviewUC.GetUpcomingInterviews(h.now()))
}

// ListInterviewsByCandidate godoc
// @Summary      List interviews of a candidate
// @Description  Get every interview scheduled for a candidate
// @Tags         interviews
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /interviews/by-candidate/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) ByCandidate(c *gin.Context) {
	response.Success(c, http.StatusOK, "Interviews", h.interviewUC.GetInterviewsByCandidate(c.Param("id")))
}

// ListInterviewsByInterviewer godoc
// @Summary      List interviews of an interviewer
// @Description  Get the interviews a user sits on. Pass "me" for the acting user.
// @Tags         interviews
// @Produce      json
// @Param        id  path  string  true  "User ID or me"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /interviews/by-interviewer/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) ByInterviewer(c *gin.Context) {
	id := c.Param("id")
	if id == "me" {
		id = actorID(c)
	}
	response.Success(c, http.StatusOK, "Interviews", h.interviewUC.GetInterviewsByInterviewer(id))
}

// GetInterview godoc
// @Summary      Get interview
// @Description  Get an interview by id
// @Tags         interviews
// @Produce      json
// @Param        id  path  string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) Get(c *gin.Context) {
	iv, err := h.interviewUC.GetInterview(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview", iv)
}

// CreateInterview godoc
// @Summary      Schedule interview
// @Description  Schedule an interview for a candidate
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview  body  domain.Interview  true  "Interview JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Create(c *gin.Context) {
	var req domain.Interview
	if !bindJSON(c, &req) {
		return
	}
	iv, err := h.interviewUC.CreateInterview(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview scheduled", iv)
}

// UpdateInterview godoc
// @Summary      Update interview
// @Description  Apply a partial update to an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Interview ID"
// @Param        interview  body  object  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /interviews/{id} [patch]
// @Security     BearerAuth
func (h *InterviewHandler) Update(c *gin.Context) {
	var patch domain.InterviewPatch
	if !bindJSON(c, &patch) {
		return
	}
	iv, err := h.interviewUC.UpdateInterview(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview updated", iv)
}

// DeleteInterview godoc
// @Summary      Delete interview
// @Description  Delete an interview
// @Tags         interviews
// @Produce      json
// @Param        id  path  string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /interviews/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.interviewUC.DeleteInterview(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview deleted", nil)
}
