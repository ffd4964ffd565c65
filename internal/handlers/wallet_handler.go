package handlers

import (
	"net/http"
	"strconv"

	"cashback-service/internal/middleware"
	"cashback-service/internal/services"
	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	Wallet *services.WalletService
}

func NewWalletHandler(wallet *services.WalletService) *WalletHandler {
	return &WalletHandler{Wallet: wallet}
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	res, err := h.Wallet.GetWallet(middleware.UserId(c))
	respond(c, res, err)
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	page, limit := pageParams(c)
	res, err := h.Wallet.GetTransactions(middleware.UserId(c), page, limit)
	if err != nil {
		respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type withdrawRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	PaymentHandle string  `json:"payment_handle" binding:"required"`
}

func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	res, err := h.Wallet.RequestWithdrawal(services.WithdrawRequestDTO{
		UserId:        middleware.UserId(c),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentHandle: req.PaymentHandle,
	})
	respond(c, res, err)
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
