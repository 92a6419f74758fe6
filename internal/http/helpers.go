package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkarpov/readshelf/internal/pagination"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondInternalError(c *gin.Context, err error, message string) {
	log.Printf("ERROR: %s: %v", message, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// parseIDParam reads the :id path segment as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "Invalid book ID")
		return 0, false
	}
	return uint(id), true
}

// parseListingParams reads the shared listing query parameters. Values
// that fail to parse fall back to the defaults; everything else is left
// to NormalizeParams.
func parseListingParams(c *gin.Context) pagination.Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(pagination.DefaultPage)))
	if err != nil {
		page = pagination.DefaultPage
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(pagination.DefaultPerPage)))
	if err != nil {
		perPage = pagination.DefaultPerPage
	}
	return pagination.NormalizeParams(page, perPage, c.Query("sort"), c.Query("order"))
}
