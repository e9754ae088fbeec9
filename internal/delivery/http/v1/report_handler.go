package v1

import (
	"net/http"
	"time"

	"go-hiring-sync/internal/audit"
	"go-hiring-sync/internal/delivery/http/middleware"
	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"

	"github.com/gin-gonic/gin"
)

var exportContentTypes = map[string]string{
	audit.FormatCSV:  "text/csv; charset=utf-8",
	audit.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type ReportHandler struct {
	auditUC     domain.AuditUsecase
	analyticsUC domain.AnalyticsUsecase
	now         func() time.Time
}

func NewReportHandler(r *gin.RouterGroup, auditUC domain.AuditUsecase, analyticsUC domain.AnalyticsUsecase, now func() time.Time) {
	handler := &ReportHandler{auditUC: auditUC, analyticsUC: analyticsUC, now: now}

	r.GET("/analytics", handler.Analytics)

	logs := r.Group("/audit", middleware.RequireRole(domain.RoleAdmin))
	{
		logs.GET("", handler.AuditLog)
		logs.GET("/export", handler.Export)
	}
}

// GetAnalytics godoc
// @Summary      Get analytics snapshot
// @Description  Totals and breakdowns computed from the loaded collections
// @Tags         reports
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /analytics [get]
// @Security     BearerAuth
func (h *ReportHandler) Analytics(c *gin.Context) {
	response.Success(c, http.StatusOK, "Analytics", h.analyticsUC.GetAnalyticsSnapshot(h.now()))
}

// ListAuditLog godoc
// @Summary      List audit log
// @Description  Filter the audit trail by entity, entityId, userId and action, newest first (Admin only)
// @Tags         audit
// @Produce      json
// @Param        entity  query  string  false  "Entity type"
// @Param        entityId  query  string  false  "Entity ID"
// @Param        userId  query  string  false  "Acting user ID"
// @Param        action  query  string  false  "CREATE, UPDATE, DELETE or LOGIN"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /audit [get]
// @Security     BearerAuth
func (h *ReportHandler) AuditLog(c *gin.Context) {
	var filter domain.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.New(400, "Invalid filter", err))
		return
	}
	entries, err := h.auditUC.GetAuditLog(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Audit log", entries)
}

// ExportAuditLog godoc
// @Summary      Export audit log
// @Description  Download the filtered audit trail as csv (default) or xlsx (Admin only)
// @Tags         audit
// @Produce      application/octet-stream
// @Param        format  query  string  false  "csv or xlsx"
// @Param        entity  query  string  false  "Entity type"
// @Param        userId  query  string  false  "Acting user ID"
// @Success      200  {file}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /audit/export [get]
// @Security     BearerAuth
func (h *ReportHandler) Export(c *gin.Context) {
	var filter domain.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.New(400, "Invalid filter", err))
		return
	}
	format := c.DefaultQuery("format", audit.FormatCSV)
	data, filename, err := h.auditUC.ExportAuditLog(c.Request.Context(), filter, format)
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, filename, exportContentTypes[format], data)
}
