package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// RoleHandler serves role creation and listing.
type RoleHandler struct {
	db *gorm.DB
}

func NewRoleHandler(database *gorm.DB) *RoleHandler {
	return &RoleHandler{db: database}
}

// CreateRoleRequest names the role to create. The access level is derived
// from the title, never supplied by the caller.
type CreateRoleRequest struct {
	Title string `json:"title"`
}

// CreateRole godoc
// @Summary Create a role
// @Tags roles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param role body CreateRoleRequest true "Role title"
// @Success 201 {object} models.Role
// @Failure 400 {object} ErrorResponse
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please provide the role title"})
		return
	}

	if !models.ValidRoleTitle(req.Title) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role title"})
		return
	}

	role := models.Role{Title: req.Title}
	if err := h.db.Create(&role).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create role"})
		return
	}

	c.JSON(http.StatusCreated, role)
}

// ListRoles godoc
// @Summary List all roles
// @Tags roles
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Role
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	var roles []models.Role
	if err := h.db.Order("access_level ASC").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}
