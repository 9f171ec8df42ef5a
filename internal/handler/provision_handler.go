package handler

import (
	"errors"
	"net/http"

	"attendance/internal/middleware"
	"attendance/internal/service"

	"github.com/gin-gonic/gin"
)

// ProvisionHandler exposes the privileged user-creation function. Unlike the
// rest of the API it answers with the function's own wire shape
// ({success, authUser, dbUser, message} / {error}) rather than the standard
// envelope, because external tooling consumes it directly.
type ProvisionHandler struct {
	provision service.ProvisionService
}

func NewProvisionHandler(provision service.ProvisionService) *ProvisionHandler {
	return &ProvisionHandler{provision: provision}
}

func (h *ProvisionHandler) RegisterRoutes(router *gin.RouterGroup, authMW, profileMW gin.HandlerFunc) {
	router.POST("/admin/users", authMW, profileMW, h.CreateUser)
}

// CreateUser creates a login identity bound to a profile row
// @Summary      Privileged user creation
// @Description  Verifies the caller's stored role is admin or hr, creates the login identity, stamps role metadata and upserts the profile; rolls the identity back on profile failure
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "New user"
// @Success      200      {object}  service.CreateUserResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /admin/users [post]
func (h *ProvisionHandler) CreateUser(c *gin.Context) {
	caller, ok := middleware.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	created, err := h.provision.CreateUser(c.Request.Context(), caller, req)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		status := statusFromError(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, created)
}
