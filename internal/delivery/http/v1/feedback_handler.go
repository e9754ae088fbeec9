package v1

import (
	"net/http"

	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackUC domain.FeedbackUsecase
}

func NewFeedbackHandler(r *gin.RouterGroup, feedbackUC domain.FeedbackUsecase) {
	handler := &FeedbackHandler{feedbackUC: feedbackUC}

	feedback := r.Group("/feedback")
	{
		feedback.GET("", handler.List)
		feedback.GET("/by-candidate/:id", handler.ByCandidate)
		feedback.GET("/by-interview/:id", handler.ByInterview)
		feedback.GET("/aggregate/:candidateId", handler.Aggregate)
		feedback.POST("", handler.Create)
		feedback.PATCH("/:id", handler.Update)
	}
}

// ListFeedback godoc
// @Summary      List feedback
// @Description  Get every feedback record
// @Tags         feedback
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /feedback [get]
// @Security     BearerAuth
func (h *FeedbackHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Feedback", h.feedbackUC.ListFeedback())
}

// ListFeedbackByCandidate godoc
// @Summary      List feedback of a candidate
// @Description  Get the feedback left for a candidate
// @Tags         feedback
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /feedback/by-candidate/{id} [get]
// @Security     BearerAuth
func (h *FeedbackHandler) ByCandidate(c *gin.Context) {
	response.Success(c, http.StatusOK, "Feedback", h.feedbackUC.GetFeedbackByCandidate(c.Param("id")))
}

// ListFeedbackByInterview godoc
// @Summary      List feedback of an interview
// @Description  Get the feedback left for one interview
// @Tags         feedback
// @Produce      json
// @Param        id  path  string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /feedback/by-interview/{id} [get]
// @Security     BearerAuth
func (h *FeedbackHandler) ByInterview(c *gin.Context) {
	response.Success(c, http.StatusOK, "Feedback", h.feedbackUC.GetFeedbackByInterview(c.Param("id")))
}

// AggregateFeedback godoc
// @Summary      Aggregate candidate feedback
// @Description  Average ratings per criterion, vote counts and the overall recommendation. Answers 404 while the candidate has no feedback.
// @Tags         feedback
// @Produce      json
// @Param        candidateId  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /feedback/aggregate/{candidateId} [get]
// @Security     BearerAuth
func (h *FeedbackHandler) Aggregate(c *gin.Context) {
	agg, err := h.feedbackUC.GetAggregateFeedback(c.Param("candidateId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Aggregate feedback", agg)
}

// CreateFeedback godoc
// @Summary      Submit feedback
// @Description  Submit interviewer feedback with 1-5 ratings
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        feedback  body  domain.Feedback  true  "Feedback JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /feedback [post]
// @Security     BearerAuth
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req domain.Feedback
	if !bindJSON(c, &req) {
		return
	}
	fb, err := h.feedbackUC.CreateFeedback(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Feedback submitted", fb)
}

// UpdateFeedback godoc
// @Summary      Update feedback
// @Description  Apply a partial update to a feedback record
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Feedback ID"
// @Param        feedback  body  object  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /feedback/{id} [patch]
// @Security     BearerAuth
func (h *FeedbackHandler) Update(c *gin.Context) {
	var patch domain.FeedbackPatch
	if !bindJSON(c, &patch) {
		return
	}
	fb, err := h.feedbackUC.UpdateFeedback(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Feedback updated", fb)
}
