package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthController reports process and database health
type HealthController struct {
	db *pgxpool.Pool
}

// NewHealthController creates a new HealthController
func NewHealthController(db *pgxpool.Pool) *HealthController {
	return &HealthController{db: db}
}

// Health returns service status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	dbState := "up"
	status := http.StatusOK
	if err := c.db.Ping(ctx.Request.Context()); err != nil {
		dbState = "down"
		status = http.StatusServiceUnavailable
	}

	ctx.JSON(status, gin.H{
		"status":    dbState == "up",
		"database":  dbState,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
