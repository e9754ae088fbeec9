package v1

import (
	"net/http"

	"go-hiring-sync/internal/delivery/http/middleware"
	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerUC domain.OfferUsecase
}

func NewOfferHandler(r *gin.RouterGroup, offerUC domain.OfferUsecase) {
	handler := &OfferHandler{offerUC: offerUC}

	offers := r.Group("/offers", middleware.RequireRole(domain.RoleAdmin, domain.RoleHR))
	{
		offers.GET("", handler.List)
		offers.GET("/eligible", handler.Eligible)
		offers.GET("/by-candidate/:id", handler.ByCandidate)
		offers.GET("/:id", handler.Get)
		offers.POST("", handler.Create)
		offers.PATCH("/:id", handler.Update)
		offers.DELETE("/:id", handler.Delete)
	}
}

// ListOffers godoc
// @Summary      List offers
// @Description  Get every offer (Admin/HR only)
// @Tags         offers
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /offers [get]
// @Security     BearerAuth
func (h *OfferHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Offers", h.offerUC.ListOffers())
}

// ListOfferEligible godoc
// @Summary      List offer-eligible candidates
// @Description  Get candidates in the offer stage who have no offer yet (Admin/HR only)
// @Tags         offers
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /offers/eligible [get]
// @Security     BearerAuth
func (h *OfferHandler) Eligible(c *gin.Context) {
	response.Success(c, http.StatusOK, "Candidates awaiting an offer", h.offerUC.OfferEligibleCandidates())
}

// GetOfferByCandidate godoc
// @Summary      Get offer of a candidate
// @Description  Get the offer made to a candidate (Admin/HR only)
// @Tags         offers
// @Produce      json
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /offers/by-candidate/{id} [get]
// @Security     BearerAuth
func (h *OfferHandler) ByCandidate(c *gin.Context) {
	offer, err := h.offerUC.GetOfferByCandidate(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer", offer)
}

// GetOffer godoc
// @Summary      Get offer
// @Description  Get an offer by id (Admin/HR only)
// @Tags         offers
// @Produce      json
// @Param        id  path  string  true  "Offer ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /offers/{id} [get]
// @Security     BearerAuth
func (h *OfferHandler) Get(c *gin.Context) {
	offer, err := h.offerUC.GetOffer(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer", offer)
}

// CreateOffer godoc
// @Summary      Create offer
// @Description  Create an offer letter (Admin/HR only)
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        offer  body  domain.Offer  true  "Offer JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /offers [post]
// @Security     BearerAuth
func (h *OfferHandler) Create(c *gin.Context) {
	var req domain.Offer
	if !bindJSON(c, &req) {
		return
	}
	offer, err := h.offerUC.CreateOffer(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Offer created", offer)
}

// UpdateOffer godoc
// @Summary      Update offer
// @Description  Apply a partial update to an offer (Admin/HR only)
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Offer ID"
// @Param        offer  body  object  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /offers/{id} [patch]
// @Security     BearerAuth
func (h *OfferHandler) Update(c *gin.Context) {
	var patch domain.OfferPatch
	if !bindJSON(c, &patch) {
		return
	}
	offer, err := h.offerUC.UpdateOffer(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer updated", offer)
}

// DeleteOffer godoc
// @Summary      Delete offer
// @Description  Delete an offer (Admin/HR only)
// @Tags         offers
// @Produce      json
// @Param        id  path  string  true  "Offer ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /offers/{id} [delete]
// @Security     BearerAuth
func (h *OfferHandler) Delete(c *gin.Context) {
	if err := h.offerUC.DeleteOffer(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer deleted", nil)
}
