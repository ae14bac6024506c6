package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/authz"
	"github.com/kevgathuku/docue-stack-sub000/internal/db"
	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

// defaultListLimit bounds document listings when no limit is given.
const defaultListLimit = 10

// createdDatePattern accepts YYYY-M-D with 1-2 digit month and day.
var createdDatePattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// DocumentHandler serves document CRUD and the filtered listings.
type DocumentHandler struct {
	db *gorm.DB
}

func NewDocumentHandler(database *gorm.DB) *DocumentHandler {
	return &DocumentHandler{db: database}
}

// CreateDocumentRequest holds the fields of a new document.
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Role    string `json:"role"`
}

// UpdateDocumentRequest holds the optional fields of a document update.
// The owner is immutable; an ownerId in the body is never read.
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Role    *string `json:"role"`
}

// filterReadable keeps the documents the caller may read: owned ones, plus
// those whose required access level the caller meets.
func filterReadable(caller authz.Caller, docs []models.Document) []models.Document {
	readable := make([]models.Document, 0, len(docs))
	for i := range docs {
		if authz.CanRead(caller, &docs[i]) {
			readable = append(readable, docs[i])
		}
	}
	return readable
}

// loadDocument fetches a document with its role populated.
func (h *DocumentHandler) loadDocument(id string) (*models.Document, error) {
	var doc models.Document
	if err := h.db.Preload("Role").Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocument godoc
// @Summary Create a document
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param document body CreateDocumentRequest true "Document details"
// @Success 201 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please provide the document title"})
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

	// The owner comes from the token payload, never from the request body.
	ownerID, err := uuid.Parse(caller.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to authenticate token."})
		return
	}

	doc := models.Document{
		Title:   req.Title,
		Content: req.Content,
		OwnerID: ownerID,
		RoleID:  role.ID,
	}

	if err := h.db.Create(&doc).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create document"})
		return
	}

	doc.Role = *role
	c.JSON(http.StatusCreated, doc)
}

// ListDocuments godoc
// @Summary List documents readable by the caller, most recent first
// @Tags documents
// @Security BearerAuth
// @Param limit query int false "Maximum number of documents" default(10)
// @Success 200 {array} models.Document
// @Failure 400 {object} ErrorResponse
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Limit must be an integer"})
			return
		}
		// limit=0 means unbounded.
		if parsed == 0 {
			parsed = -1
		}
		limit = parsed
	}

	var docs []models.Document
	if err := h.db.Preload("Role").
		Order("date_created DESC").
		Limit(limit).
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, filterReadable(caller, docs))
}

// GetDocument godoc
// @Summary Get a document by ID
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	doc, err := h.loadDocument(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		return
	}

	if !authz.CanRead(caller, doc) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You are not allowed to access this document"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// UpdateDocument godoc
// @Summary Update a document
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param document body UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	doc, err := h.loadDocument(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		return
	}

	if !authz.CanModify(caller, doc) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You are not allowed to access this document"})
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Please provide the document title"})
			return
		}
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.Role != nil {
		if !models.ValidRoleTitle(*req.Role) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role does not exist"})
			return
		}
		role, err := db.FindRoleByTitle(h.db, *req.Role)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role does not exist"})
			return
		}
		doc.RoleID = role.ID
		doc.Role = *role
	}

	if err := h.db.Save(doc).Error; err != nil {
		if isDuplicate(err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update document"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocument godoc
// @Summary Delete a document (owner or admin)
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	doc, err := h.loadDocument(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		return
	}

	if !authz.CanDelete(caller, doc) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You are not allowed to delete this document"})
		return
	}

	if err := h.db.Delete(doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete document"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByRole godoc
// @Summary List documents requiring a given role, most recent first
// @Tags documents
// @Security BearerAuth
// @Param role path string true "Role title"
// @Success 200 {array} models.Document
// @Failure 404 {object} ErrorResponse
// @Router /documents/roles/{role} [get]
func (h *DocumentHandler) ListByRole(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	role, err := db.FindRoleByTitle(h.db, c.Param("role"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Role not found"})
		return
	}

	var docs []models.Document
	if err := h.db.Preload("Role").
		Where("role_id = ?", role.ID).
		Order("date_created DESC").
		Limit(defaultListLimit).
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, filterReadable(caller, docs))
}

// ListByDate godoc
// @Summary List documents created on a given UTC day
// @Tags documents
// @Security BearerAuth
// @Param date path string true "Date (YYYY-M-D)"
// @Success 200 {array} models.Document
// @Failure 400 {object} ErrorResponse
// @Router /documents/created/{date} [get]
func (h *DocumentHandler) ListByDate(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	raw := c.Param("date")
	if !createdDatePattern.MatchString(raw) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Date must be in the format YYYY-MM-DD"})
		return
	}

	day, err := time.ParseInLocation("2006-1-2", raw, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Date must be in the format YYYY-MM-DD"})
		return
	}

	var docs []models.Document
	if err := h.db.Preload("Role").
		Where("date_created >= ? AND date_created < ?", day, day.Add(24*time.Hour)).
		Order("date_created DESC").
		Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, filterReadable(caller, docs))
}
