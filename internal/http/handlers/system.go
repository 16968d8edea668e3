package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	DB *sql.DB
}

// GET /api/health
func (h SystemHandler) Health(c *gin.Context) {
	dbStatus := "up"
	if h.DB == nil {
		dbStatus = "down"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
	}

	status := http.StatusOK
	if dbStatus != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"success": dbStatus == "up", "status": "ok", "database": dbStatus})
}
