package handlers

import (
	"net/http"

	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// respond writes a service envelope using the HTTP status it carries.
// Service methods return (envelope, nil) for every handled outcome and
// a non-nil error only for storage failures.
func respond(c *gin.Context, res interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error", nil, http.StatusInternalServerError))
		return
	}

	switch v := res.(type) {
	case common.SuccessResponse:
		c.JSON(v.Status, v)
	case common.ErrorResponse:
		c.JSON(v.Status, v)
	default:
		c.JSON(http.StatusOK, res)
	}
}
