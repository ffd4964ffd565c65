package handlers

import (
	"net/http"
	"strconv"

	"cashback-service/internal/models"
	"cashback-service/internal/services"
	"cashback-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{Admin: admin}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) ApproveTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res, err := h.Admin.ApproveTransaction(id)
	respond(c, res, err)
}

func (h *AdminHandler) RejectTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req rejectRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.Admin.RejectTransaction(id, req.Reason)
	respond(c, res, err)
}

func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res, err := h.Admin.ApproveWithdrawal(id)
	respond(c, res, err)
}

func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req rejectRequest
	_ = c.ShouldBindJSON(&req)

	res, err := h.Admin.RejectWithdrawal(id, req.Reason)
	respond(c, res, err)
}

func (h *AdminHandler) ListPendingTransactions(c *gin.Context) {
	kind := c.DefaultQuery("kind", models.KindCredit)
	page, limit := pageParams(c)

	res, err := h.Admin.ListPendingTransactions(kind, page, limit)
	if err != nil {
		respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid transaction id", nil, http.StatusBadRequest))
		return 0, false
	}
	return id, true
}
