package handler

import (
	"net/http"
	"strconv"
	"time"

	"attendance/internal/middleware"
	"attendance/internal/rbac"
	"attendance/internal/service"
	"attendance/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup, authMW, profileMW gin.HandlerFunc) {
	reports := router.Group("/reports", authMW, profileMW)
	{
		reports.GET("/dashboard", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanViewDashboard }), h.Dashboard)
		reports.GET("/monthly", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanViewReports }), h.Monthly)
	}
}

// Dashboard returns today's headline numbers and the recent activity feed
// @Summary      Dashboard stats
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.DashboardStats}
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	stats, err := h.reports.Dashboard(c.Request.Context(), caller)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// Monthly returns the caller's aggregated month
// @Summary      Monthly report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  false  "Year (defaults to current)"
// @Param        month  query     int  false  "Month 1-12 (defaults to current)"
// @Success      200    {object}  response.Response{data=service.MonthlySummary}
// @Failure      403    {object}  response.Response
// @Router       /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Month must be between 1 and 12"))
		return
	}

	summary, err := h.reports.Monthly(c.Request.Context(), caller, year, time.Month(monthNum))
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
