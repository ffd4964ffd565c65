package handlers

import (
	"net/http"
	"strconv"

	"cashback-service/internal/middleware"
	"cashback-service/internal/services"
	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type ClickHandler struct {
	Clicks *services.ClickService
}

func NewClickHandler(clicks *services.ClickService) *ClickHandler {
	return &ClickHandler{Clicks: clicks}
}

// TrackClick resolves GET /api/offers/:id/track. The caller's tier
// rides in as an optional query param; an unknown tier falls back to
// the base multiplier inside the rating step.
func (h *ClickHandler) TrackClick(c *gin.Context) {
	offerId, err := strconv.Atoi(c.Param("id"))
	if err != nil || offerId < 1 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid offer id", nil, http.StatusBadRequest))
		return
	}

	res, err := h.Clicks.TrackClick(services.TrackClickDTO{
		UserId:   middleware.UserId(c),
		OfferId:  offerId,
		UserTier: c.Query("tier"),
	})
	respond(c, res, err)
}
