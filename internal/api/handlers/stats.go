package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/cache"
	"github.com/kevgathuku/docue-stack-sub000/internal/models"
)

const (
	statsCacheKey = "docue:stats:counts"
	statsCacheTTL = 30 * time.Second
)

// StatsHandler serves global entity counts, cached for a short interval.
type StatsHandler struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewStatsHandler(database *gorm.DB, statsCache cache.Cache) *StatsHandler {
	return &StatsHandler{db: database, cache: statsCache}
}

// StatsResponse carries the global entity counts.
type StatsResponse struct {
	Documents int64 `json:"documents"`
	Users     int64 `json:"users"`
	Roles     int64 `json:"roles"`
}

// GetStats godoc
// @Summary Global entity counts (admin only)
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := h.cache.Get(ctx, statsCacheKey); ok {
		var resp StatsResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	var resp StatsResponse
	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Document{}, &resp.Documents},
		{&models.User{}, &resp.Users},
		{&models.Role{}, &resp.Roles},
	}
	for _, count := range counts {
		if err := h.db.Model(count.model).Count(count.dest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch stats"})
			return
		}
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := h.cache.Set(ctx, statsCacheKey, string(encoded), statsCacheTTL); err != nil {
			slog.Warn("Failed to cache stats", "error", err)
		}
	}

	c.JSON(http.StatusOK, resp)
}
