package handler

import (
	"net/http"

	"attendance/internal/middleware"
	"attendance/internal/rbac"
	"attendance/internal/service"
	"attendance/pkg/pagination"
	"attendance/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	employees service.EmployeeService
	provision service.ProvisionService
}

func NewEmployeeHandler(employees service.EmployeeService, provision service.ProvisionService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, provision: provision}
}

// RegisterRoutes binds the employee endpoints. Capability gates run in
// middleware AND again inside the services: the route-level check keeps
// forbidden calls from ever reaching a handler, the service-level check is
// the independent enforcement layer behind it.
func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup, authMW, profileMW gin.HandlerFunc) {
	employees := router.Group("/employees", authMW, profileMW)
	{
		employees.GET("", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanViewEmployees }), h.List)
		employees.GET("/:id", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanViewEmployees }), h.Get)
		employees.POST("", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanCreateEmployee }), h.Create)
		employees.PUT("/:id", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanEditEmployee }), h.Update)
		employees.DELETE("/:id", middleware.RequireCapability(func(p rbac.PermissionSet) bool { return p.CanDeleteEmployee }), h.Delete)
	}
}

// List returns the tenant's employees
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        page              query     int   false  "Page"
// @Param        limit             query     int   false  "Limit"
// @Param        include_inactive  query     bool  false  "Administrative listing including inactive rows"
// @Success      200  {object}  response.Response{data=[]service.EmployeeResponse}
// @Failure      403  {object}  response.Response
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	params := pagination.Parse(c)
	includeInactive := c.Query("include_inactive") == "true"

	employees, total, err := h.employees.List(c.Request.Context(), caller, includeInactive, params.Page, params.Limit)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, employees, total, params.Page, params.Limit))
}

// Get returns one employee in the caller's tenant
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee UUID"
// @Success      200  {object}  response.Response{data=service.EmployeeResponse}
// @Failure      404  {object}  response.Response
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid employee id"))
		return
	}

	employee, err := h.employees.Get(c.Request.Context(), caller, id)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// Create provisions a new employee (login identity + profile)
// @Summary      Create employee
// @Description  Creates a login identity and its profile row; rolls the identity back if the profile write fails
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "New employee"
// @Success      201      {object}  response.Response{data=service.CreateUserResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.provision.CreateUser(c.Request.Context(), caller, req)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// Update edits an employee's profile
// @Summary      Update employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Employee UUID"
// @Param        payload  body      service.UpdateEmployeeRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=service.EmployeeResponse}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid employee id"))
		return
	}

	var req service.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	employee, err := h.employees.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, employee))
}

// Delete deactivates an employee (soft delete, admin only)
// @Summary      Deactivate employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee UUID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid employee id"))
		return
	}

	if err := h.employees.Deactivate(c.Request.Context(), caller, id); err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Employee deactivated"}))
}
