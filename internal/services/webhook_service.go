package services

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

// WebhookService drives the reconciliation state machine from partner
// callbacks. The partner delivers at least once and retries on
// failure responses, so every handler is idempotent with respect to
// its correlation key: unknown or already-processed events are
// acknowledged with 202 rather than errored.
type WebhookService struct {
	DB       *gorm.DB
	Catalog  *CatalogService
	Cashback *CashbackService
	Wallet   *WalletService
	Helper   *HelperService
}

func NewWebhookService(db *gorm.DB, catalog *CatalogService, cashback *CashbackService, wallet *WalletService, helper *HelperService) *WebhookService {
	return &WebhookService{DB: db, Catalog: catalog, Cashback: cashback, Wallet: wallet, Helper: helper}
}

type PurchaseWebhookDTO struct {
	ClickId          string  `json:"clickId"`
	PurchaseAmount   float64 `json:"purchaseAmount"`
	TransactionId    string  `json:"transactionId"`
	MerchantCategory string  `json:"merchantCategory"`
	UserTier         string  `json:"userTier"`
	RawBody          string  `json:"-"`
}

// HandlePurchase books a pending cashback for a partner-reported
// purchase. The reported amount supersedes any click-time estimate.
func (s *WebhookService) HandlePurchase(dto PurchaseWebhookDTO) (interface{}, error) {
	res, err := s.handlePurchase(dto)
	s.logOutcome("purchase", dto.RawBody, dto.TransactionId, res, err)
	return res, err
}

func (s *WebhookService) handlePurchase(dto PurchaseWebhookDTO) (interface{}, error) {
	if dto.ClickId == "" || dto.TransactionId == "" || dto.PurchaseAmount <= 0 {
		return common.NewErrorResponse("Missing required webhook data", nil, http.StatusBadRequest), nil
	}

	var click models.Click
	if err := s.DB.Where("click_id = ?", dto.ClickId).First(&click).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("purchase webhook for unknown clickId %s, ignoring", dto.ClickId)
			return common.NewAcceptedResponse("Click not found, event ignored"), nil
		}
		return nil, err
	}

	// Duplicate delivery guard on the partner transaction id.
	var dup int64
	if err := s.DB.Model(&models.Transaction{}).
		Where("external_transaction_id = ?", dto.TransactionId).
		Count(&dup).Error; err != nil {
		return nil, err
	}
	if dup > 0 {
		log.Printf("duplicate purchase webhook for transactionId %s", dto.TransactionId)
		return common.NewAcceptedResponse("Duplicate transaction received"), nil
	}

	offer, err := s.Catalog.GetOffer(click.OfferId)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	storeName := "partner store"
	category := dto.MerchantCategory
	if offer != nil {
		storeName = offer.Store.Name
		if category == "" {
			category = offer.Category
		}
	}

	if err := s.supersedeEstimate(click); err != nil {
		return nil, err
	}

	created, err := s.Cashback.CreatePendingCashback(click.UserId, PendingCashbackRef{
		ClickId:               dto.ClickId,
		ExternalTransactionId: dto.TransactionId,
		UserTier:              dto.UserTier,
		MerchantCategory:      category,
		StoreName:             storeName,
	}, dto.PurchaseAmount)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return common.NewAcceptedResponse("Purchase not eligible for cashback"), nil
	}

	return common.NewCreatedResponse(created, "Purchase received, pending transaction created for review"), nil
}

// supersedeEstimate reverses a click-time estimated credit once the
// partner reports the real purchase: the estimate leaves the pending
// bucket and is marked failed before the actual-amount credit is
// written.
func (s *WebhookService) supersedeEstimate(click models.Click) error {
	var estimate models.Transaction
	err := s.DB.Where("click_id = ? AND kind = ? AND status = ? AND external_transaction_id IS NULL",
		click.ClickId, models.KindCredit, models.StatusPending).
		First(&estimate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", estimate.ID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":         models.StatusFailed,
				"failure_reason": "superseded by partner purchase report",
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return s.Wallet.IncrementPending(tx, estimate.UserId, -estimate.Amount)
	})
}

type ConfirmationWebhookDTO struct {
	TransactionId string `json:"transactionId"`
	RawBody       string `json:"-"`
}

// HandleConfirmation notes an advisory partner confirmation on the
// pending transaction. No funds move here; admin approval is the
// authoritative step.
func (s *WebhookService) HandleConfirmation(dto ConfirmationWebhookDTO) (interface{}, error) {
	res, err := s.handleConfirmation(dto)
	s.logOutcome("confirmation", dto.RawBody, dto.TransactionId, res, err)
	return res, err
}

func (s *WebhookService) handleConfirmation(dto ConfirmationWebhookDTO) (interface{}, error) {
	if dto.TransactionId == "" {
		return common.NewErrorResponse("Missing transactionId in confirmation webhook", nil, http.StatusBadRequest), nil
	}

	var transaction models.Transaction
	err := s.DB.Where("external_transaction_id = ? AND kind = ? AND status = ?",
		dto.TransactionId, models.KindCredit, models.StatusPending).
		First(&transaction).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("confirmation webhook for unknown/non-pending transactionId %s, ignoring", dto.TransactionId)
			return common.NewAcceptedResponse("No pending transaction found to confirm"), nil
		}
		return nil, err
	}

	if transaction.PartnerConfirmedAt != nil {
		return common.NewAcceptedResponse("Transaction already marked confirmed by partner"), nil
	}

	// Conditional on the row still being pending and unmarked, so a
	// cancellation racing this delivery cannot end up with an advisory
	// marker on a failed row.
	now := time.Now()
	res := s.DB.Model(&models.Transaction{}).
		Where("id = ? AND status = ? AND partner_confirmed_at IS NULL", transaction.ID, models.StatusPending).
		UpdateColumn("partner_confirmed_at", now)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewAcceptedResponse("No pending transaction found to confirm"), nil
	}

	s.Helper.RecordActivity(transaction.UserId, "transaction",
		fmt.Sprintf("Partner confirmed transaction %s, awaiting admin approval", dto.TransactionId))

	return common.NewSuccessResponse(nil, "Partner confirmation noted, awaiting admin approval"), nil
}

type CancellationWebhookDTO struct {
	TransactionId string `json:"transactionId"`
	Reason        string `json:"reason"`
	RawBody       string `json:"-"`
}

// HandleCancellation transitions the matching pending credit to failed
// and removes its amount from the pending bucket. The transition and
// the decrement are conditional on the row still being pending, so
// re-delivery can never decrement twice.
func (s *WebhookService) HandleCancellation(dto CancellationWebhookDTO) (interface{}, error) {
	res, err := s.handleCancellation(dto)
	s.logOutcome("cancellation", dto.RawBody, dto.TransactionId, res, err)
	return res, err
}

func (s *WebhookService) handleCancellation(dto CancellationWebhookDTO) (interface{}, error) {
	if dto.TransactionId == "" {
		return common.NewErrorResponse("Missing transactionId in cancellation webhook", nil, http.StatusBadRequest), nil
	}

	var transaction models.Transaction
	err := s.DB.Where("external_transaction_id = ? AND kind = ?",
		dto.TransactionId, models.KindCredit).
		First(&transaction).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("cancellation webhook for unknown transactionId %s, ignoring", dto.TransactionId)
			return common.NewAcceptedResponse("Transaction not found"), nil
		}
		return nil, err
	}

	reason := dto.Reason
	if reason == "" {
		reason = "cancelled by partner"
	}

	handled := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", transaction.ID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":         models.StatusFailed,
				"failure_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		handled = true
		return s.Wallet.IncrementPending(tx, transaction.UserId, -transaction.Amount)
	})
	if err != nil {
		return nil, err
	}

	if !handled {
		return common.NewAcceptedResponse("Transaction already handled"), nil
	}

	s.Helper.RecordActivity(transaction.UserId, "transaction",
		fmt.Sprintf("Cashback transaction %s cancelled by partner: %s", dto.TransactionId, reason))

	return common.NewSuccessResponse(nil, "Transaction marked as failed and removed from pending balance"), nil
}

func (s *WebhookService) logOutcome(eventType, rawBody, transactionId string, res interface{}, err error) {
	status := http.StatusInternalServerError
	if err == nil {
		switch r := res.(type) {
		case common.SuccessResponse:
			status = r.Status
		case common.ErrorResponse:
			status = r.Status
		}
	}
	s.Helper.LogWebhook(eventType, rawBody, res, status, transactionId)
}
