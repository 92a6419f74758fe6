package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/database"
	"github.com/mkarpov/readshelf/internal/database/catalog"
)

// HealthController reports service liveness. The response shape is fixed
// so monitoring clients can rely on it.
type HealthController struct {
	db         *database.Database
	catalog    *catalog.Catalog
	apiVersion string
}

func NewHealthController(db *database.Database, cat *catalog.Catalog, apiVersion string) *HealthController {
	return &HealthController{db: db, catalog: cat, apiVersion: apiVersion}
}

// HealthResponse is the fixed health payload.
type HealthResponse struct {
	Status     string `json:"status"`
	APIVersion string `json:"api_version"`
	Timestamp  string `json:"timestamp"`
}

// Status pings both databases and reports ok or unhealthy.
func (ctl *HealthController) Status(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if ctl.db != nil {
		if sqlDB, err := ctl.db.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}
	if ctl.catalog != nil && ctl.catalog.Ping() != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:     status,
		APIVersion: ctl.apiVersion,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
