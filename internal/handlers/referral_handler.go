package handlers

import (
	"net/http"

	"cashback-service/internal/middleware"
	"cashback-service/internal/services"
	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	Referrals *services.ReferralService
}

func NewReferralHandler(referrals *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{Referrals: referrals}
}

type registerReferralRequest struct {
	ReferredId int `json:"referred_id" binding:"required"`
}

func (h *ReferralHandler) Register(c *gin.Context) {
	var req registerReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	res, err := h.Referrals.RegisterReferral(middleware.UserId(c), req.ReferredId)
	respond(c, res, err)
}

func (h *ReferralHandler) GetData(c *gin.Context) {
	res, err := h.Referrals.GetReferralData(middleware.UserId(c))
	respond(c, res, err)
}

func (h *ReferralHandler) GetHistory(c *gin.Context) {
	res, err := h.Referrals.GetReferralHistory(middleware.UserId(c))
	respond(c, res, err)
}
