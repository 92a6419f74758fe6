package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/auth"
	"github.com/mkarpov/readshelf/internal/bookview"
)

// StatisticsController serves aggregate reading statistics.
type StatisticsController struct {
	states ReadingStateStore
}

func NewStatisticsController(stateStore ReadingStateStore) *StatisticsController {
	return &StatisticsController{states: stateStore}
}

// GetSummary aggregates the caller's reading states into a single summary.
func (ctl *StatisticsController) GetSummary(c *gin.Context) {
	states, err := ctl.states.ListAll(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve reading states")
		return
	}
	c.JSON(http.StatusOK, bookview.Summarize(states))
}
