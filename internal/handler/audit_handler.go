package handler

import (
	"net/http"

	"attendance/internal/middleware"
	"attendance/internal/rbac"
	"attendance/internal/service"
	"attendance/pkg/pagination"
	"attendance/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	audit service.AuditService
}

func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup, authMW, profileMW gin.HandlerFunc) {
	router.GET("/audit", authMW, profileMW,
		middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanManageSettings }),
		h.List)
}

// List returns the tenant's audit trail
// @Summary      List audit logs
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Limit"
// @Success      200    {object}  response.Response{data=[]service.AuditLogResponse}
// @Failure      403    {object}  response.Response
// @Router       /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	params := pagination.Parse(c)
	logs, total, err := h.audit.List(c.Request.Context(), caller, params.Page, params.Limit)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, logs, total, params.Page, params.Limit))
}
