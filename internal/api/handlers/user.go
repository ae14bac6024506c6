package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/auth"
	"github.com/kevgathuku/docue-stack-sub000/internal/authz"
	"github.com/kevgathuku/docue-stack-sub000/internal/db"
	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// UserHandler serves signup, login/logout/session and user CRUD.
type UserHandler struct {
	db   *gorm.DB
	auth *auth.Service
}

func NewUserHandler(database *gorm.DB, authService *auth.Service) *UserHandler {
	return &UserHandler{db: database, auth: authService}
}

// SignupRequest holds the fields required to create a user.
type SignupRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// UpdateUserRequest holds the optional fields of a user update. Nil pointers
// leave the stored value untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
}

// Signup godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body SignupRequest true "User details"
// @Success 201 {object} auth.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Username == "" || req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Please provide the username, firstname, lastname, email and password",
		})
		return
	}

	roleTitle := req.Role
	if roleTitle == "" {
		roleTitle = models.DefaultRoleTitle
	}
	if !models.ValidRoleTitle(roleTitle) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role does not exist"})
		return
	}

	role, err := db.FindRoleByTitle(h.db, roleTitle)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role does not exist"})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Name:         models.Name{First: req.FirstName, Last: req.LastName},
		PasswordHash: passwordHash,
		RoleID:       role.ID,
		LoggedIn:     true, // signup opens a session
	}

	if err := h.db.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create user"})
		return
	}

	user.Role = *role
	token, err := h.auth.Tokens().Issue(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, auth.LoginResponse{Token: token, User: &user})
}

// Login godoc
// @Summary User login
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please provide a username and password"})
		return
	}

	resp, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out the user identified by the bearer token
// @Tags users
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	tokenString := auth.TokenFromRequest(c)
	if tokenString == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "No token provided."})
		return
	}

	if err := h.auth.Logout(tokenString); err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) || errors.Is(err, auth.ErrTokenExpired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to authenticate token."})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}

// Session godoc
// @Summary Resolve the current session
// @Description Never errors; bad tokens collapse into a logged-out session
// @Tags users
// @Produce json
// @Success 200 {object} auth.SessionResponse
// @Router /users/session [get]
func (h *UserHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.Session(auth.TokenFromRequest(c)))
}

// ListUsers godoc
// @Summary List all users (admin only)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Preload("Role").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get a user by ID (self or admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if !authz.CanViewUserProfile(caller, targetID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unauthorized Access"})
		return
	}

	var user models.User
	if err := h.db.Preload("Role").Where("id = ?", targetID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user (self or admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if !authz.CanModifyUserProfile(caller, targetID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unauthorized Access"})
		return
	}

	var user models.User
	if err := h.db.Preload("Role").Where("id = ?", targetID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.Name.First = *req.FirstName
	}
	if req.LastName != nil {
		user.Name.Last = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		passwordHash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to hash password"})
			return
		}
		user.PasswordHash = passwordHash
	}
	// Role changes require admin; a non-admin submitting one is ignored.
	if req.Role != nil && authz.IsAdmin(caller) {
		if !models.ValidRoleTitle(*req.Role) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role does not exist"})
			return
		}
		role, err := db.FindRoleByTitle(h.db, *req.Role)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role does not exist"})
			return
		}
		user.RoleID = role.ID
		user.Role = *role
	}

	if err := h.db.Save(&user).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user (self or admin)
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if !authz.CanDeleteUser(caller, targetID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Unauthorized Access"})
		return
	}

	var user models.User
	if err := h.db.Where("id = ?", targetID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}

// UserDocuments godoc
// @Summary List documents owned by a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} models.Document
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/documents [get]
func (h *UserHandler) UserDocuments(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	var user models.User
	if err := h.db.Where("id = ?", targetID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}

	var docs []models.Document
	if err := h.db.Preload("Role").
		Where("owner_id = ?", user.ID).
		Order("date_created DESC").
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, filterReadable(caller, docs))
}
