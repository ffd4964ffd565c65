package services

import (
	"fmt"
	"log"

	"cashback-service/internal/models"
	"cashback-service/internal/rules"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

// CashbackService is the pending transaction writer: it turns a
// purchase (reported or estimated) into a pending credit transaction
// and the matching wallet increments, atomically.
type CashbackService struct {
	DB     *gorm.DB
	Engine *rules.Engine
	Wallet *WalletService
	Helper *HelperService
}

func NewCashbackService(db *gorm.DB, engine *rules.Engine, wallet *WalletService, helper *HelperService) *CashbackService {
	return &CashbackService{DB: db, Engine: engine, Wallet: wallet, Helper: helper}
}

// PendingCashbackRef carries the correlation and rating context for a
// pending credit. ExternalTransactionId is empty for click-time
// estimates; the purchase webhook supplies the partner's id.
type PendingCashbackRef struct {
	ClickId               string
	ExternalTransactionId string
	UserTier              string
	MerchantCategory      string
	StoreName             string
}

// CreatePendingCashback rates the purchase and books the pending
// credit. An ineligible purchase is a no-op returning (nil, nil).
// The transaction row and both wallet increments (pending and
// lifetime total) commit together or not at all.
func (s *CashbackService) CreatePendingCashback(userId int, ref PendingCashbackRef, purchaseAmount float64) (*models.Transaction, error) {
	breakdown := s.Engine.Calculate(purchaseAmount, ref.UserTier, ref.MerchantCategory)
	if !breakdown.IsEligible {
		log.Printf("cashback skipped: user=%d click=%s %s", userId, ref.ClickId, breakdown.Reason)
		return nil, nil
	}

	var extId *string
	source := "estimated"
	if ref.ExternalTransactionId != "" {
		extId = &ref.ExternalTransactionId
		source = fmt.Sprintf("order #%s", ref.ExternalTransactionId)
	}

	created := models.Transaction{
		UserId:                userId,
		TransactionNo:         common.GenerateTrxNo(),
		Amount:                breakdown.NetCashback,
		Kind:                  models.KindCredit,
		Status:                models.StatusPending,
		ExternalTransactionId: extId,
		ClickId:               ref.ClickId,
		Description: fmt.Sprintf("Cashback at %s (%s, click %s): %s",
			ref.StoreName, source, ref.ClickId, breakdown.Summary()),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		if err := s.Wallet.EnsureWallet(tx, userId); err != nil {
			return err
		}
		if err := s.Wallet.IncrementPending(tx, userId, breakdown.NetCashback); err != nil {
			return err
		}
		return s.Wallet.IncrementTotal(tx, userId, breakdown.NetCashback)
	})
	if err != nil {
		return nil, err
	}

	s.Helper.RecordActivity(userId, "transaction",
		fmt.Sprintf("Pending cashback of %.2f created (%s, click %s)", breakdown.NetCashback, source, ref.ClickId))

	return &created, nil
}
