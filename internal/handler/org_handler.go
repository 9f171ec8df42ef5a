package handler

import (
	"net/http"
	"strconv"

	"attendance/internal/middleware"
	"attendance/internal/service"
	"attendance/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrgHandler struct {
	org service.OrgService
}

func NewOrgHandler(org service.OrgService) *OrgHandler {
	return &OrgHandler{org: org}
}

func (h *OrgHandler) RegisterRoutes(router *gin.RouterGroup, authMW, profileMW gin.HandlerFunc) {
	org := router.Group("/org", authMW)
	{
		org.GET("/clients", h.ListClients)
		org.GET("/organizations/:id", h.GetOrganization)
		org.GET("/roles", h.ListRoles)
		org.GET("/departments", profileMW, h.ListDepartments)
		org.GET("/branches", profileMW, h.ListBranches)
	}
}

// ListClients returns the client list with embedded organizations
// @Summary      List clients
// @Tags         org
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Client}
// @Router       /org/clients [get]
func (h *OrgHandler) ListClients(c *gin.Context) {
	clients, err := h.org.ListClients(c.Request.Context())
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, clients))
}

// GetOrganization returns one organization
// @Summary      Get organization
// @Tags         org
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Organization id"
// @Success      200  {object}  response.Response{data=model.Organization}
// @Failure      404  {object}  response.Response
// @Router       /org/organizations/{id} [get]
func (h *OrgHandler) GetOrganization(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid organization id"))
		return
	}

	org, err := h.org.GetOrganization(c.Request.Context(), id)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, org))
}

// ListRoles returns the role reference data
// @Summary      List roles
// @Tags         org
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Role}
// @Router       /org/roles [get]
func (h *OrgHandler) ListRoles(c *gin.Context) {
	roles, err := h.org.ListRoles(c.Request.Context())
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// ListDepartments returns the caller tenant's departments
// @Summary      List departments
// @Tags         org
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Department}
// @Router       /org/departments [get]
func (h *OrgHandler) ListDepartments(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	departments, err := h.org.ListDepartments(c.Request.Context(), caller)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, departments))
}

// ListBranches returns the caller tenant's branches
// @Summary      List branches
// @Tags         org
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Branch}
// @Router       /org/branches [get]
func (h *OrgHandler) ListBranches(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No profile bound to this session"))
		return
	}

	branches, err := h.org.ListBranches(c.Request.Context(), caller)
	if err != nil {
		status := statusFromError(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, branches))
}
