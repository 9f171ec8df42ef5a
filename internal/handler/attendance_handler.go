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

type AttendanceHandler struct {
	attendance service.AttendanceService
}

func NewAttendanceHandler(attendance service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// RegisterRoutes binds the attendance endpoints
func (h *AttendanceHandler) RegisterRoutes(router *gin.RouterGroup, authMW, profileMW gin.HandlerFunc) {
	att := router.Group("/attendance", authMW, profileMW)
	{
		att.POST("/check-in", h.CheckIn)
		att.POST("/check-out", h.CheckOut)
		att.GET("/today", h.Today)
		att.GET("/history", h.History)
		att.PUT("/:id", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanEditAttendance }), h.Edit)
	}
}

// CheckIn opens today's attendance row
// @Summary      Check in
// @Description  Creates today's attendance row; at most one row exists per user per day
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CheckInRequest  false  "Optional location"
// @Success      201      {object}  response.Response{data=service.AttendanceResponse}
// @Failure      409      {object}  response.Response
// @Router       /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	var req service.CheckInRequest
	_ = c.ShouldBindJSON(&req)

	att, err := h.attendance.CheckIn(c.Request.Context(), caller, req)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, att))
}

// CheckOut closes today's attendance row
// @Summary      Check out
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.AttendanceResponse}
// @Failure      409  {object}  response.Response
// @Router       /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	att, err := h.attendance.CheckOut(c.Request.Context(), caller)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, att))
}

// Today returns the caller's attendance row for today, if any
// @Summary      Today's attendance
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.AttendanceResponse}
// @Router       /attendance/today [get]
func (h *AttendanceHandler) Today(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	att, err := h.attendance.Today(c.Request.Context(), caller)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, att))
}

// History returns the caller's attendance for a month
// @Summary      Attendance history
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  false  "Year (defaults to current)"
// @Param        month  query     int  false  "Month 1-12 (defaults to current)"
// @Success      200    {object}  response.Response{data=[]service.AttendanceResponse}
// @Router       /attendance/history [get]
func (h *AttendanceHandler) History(c *gin.Context) {
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

	records, err := h.attendance.History(c.Request.Context(), caller, year, time.Month(monthNum))
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// Edit corrects an attendance row (admin/hr)
// @Summary      Edit attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                            true  "Attendance id"
// @Param        payload  body      service.EditAttendanceRequest  true  "Corrections"
// @Success      200      {object}  response.Response{data=service.AttendanceResponse}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /attendance/{id} [put]
func (h *AttendanceHandler) Edit(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid attendance id"))
		return
	}

	var req service.EditAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	att, err := h.attendance.Edit(c.Request.Context(), caller, uint(id), req)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, att))
}
