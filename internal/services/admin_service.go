package services

import (
	"fmt"
	"log"
	"net/http"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

// AdminService is the authoritative approval surface. Partner
// confirmations are advisory; funds move between buckets only here.
// Every transition is a conditional update on the pending status, so a
// transaction confirms or fails exactly once.
type AdminService struct {
	DB       *gorm.DB
	Wallet   *WalletService
	Referral *ReferralService
	Helper   *HelperService
}

func NewAdminService(db *gorm.DB, wallet *WalletService, referral *ReferralService, helper *HelperService) *AdminService {
	return &AdminService{DB: db, Wallet: wallet, Referral: referral, Helper: helper}
}

func (s *AdminService) loadTransaction(id int, kind string) (*models.Transaction, interface{}, error) {
	var transaction models.Transaction
	if err := s.DB.First(&transaction, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, common.NewErrorResponse("Transaction not found", nil, http.StatusNotFound), nil
		}
		return nil, nil, err
	}
	if transaction.Kind != kind {
		return nil, common.NewErrorResponse(fmt.Sprintf("Transaction is not a %s", kind), nil, http.StatusBadRequest), nil
	}
	return &transaction, nil, nil
}

// transition applies a forward-only status change plus its wallet
// movements in one storage transaction. Returns false when the row was
// no longer pending.
func (s *AdminService) transition(transaction *models.Transaction, newStatus, reason string, move func(tx *gorm.DB) error) (bool, error) {
	applied := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": newStatus}
		if reason != "" {
			updates["failure_reason"] = reason
		}
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", transaction.ID, models.StatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		return move(tx)
	})
	return applied, err
}

// ApproveTransaction confirms a pending cashback credit: the amount
// leaves pending and enters available. A referred user's first
// confirmation fires the referral bonus.
func (s *AdminService) ApproveTransaction(id int) (interface{}, error) {
	transaction, errRes, err := s.loadTransaction(id, models.KindCredit)
	if err != nil || errRes != nil {
		return errRes, err
	}

	applied, err := s.transition(transaction, models.StatusConfirmed, "", func(tx *gorm.DB) error {
		if err := s.Wallet.IncrementPending(tx, transaction.UserId, -transaction.Amount); err != nil {
			return err
		}
		return s.Wallet.IncrementAvailable(tx, transaction.UserId, transaction.Amount)
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return common.NewErrorResponse("Transaction already processed", nil, http.StatusBadRequest), nil
	}

	s.Helper.RecordActivity(transaction.UserId, "transaction",
		fmt.Sprintf("Cashback transaction %s confirmed, %.2f moved to available", transaction.TransactionNo, transaction.Amount))

	if err := s.Referral.MaybeAwardBonus(transaction.UserId); err != nil {
		// The confirmation itself stands; a failed award rolls back
		// its claim, so the bonus stays claimable on the next
		// confirmation for this user.
		log.Printf("referral bonus check failed for user %d: %v", transaction.UserId, err)
	}

	return common.NewSuccessResponse(nil, "Transaction confirmed"), nil
}

// RejectTransaction fails a pending cashback credit: the amount simply
// leaves the pending bucket, it never entered available.
func (s *AdminService) RejectTransaction(id int, reason string) (interface{}, error) {
	transaction, errRes, err := s.loadTransaction(id, models.KindCredit)
	if err != nil || errRes != nil {
		return errRes, err
	}

	if reason == "" {
		reason = "rejected by admin"
	}

	applied, err := s.transition(transaction, models.StatusFailed, reason, func(tx *gorm.DB) error {
		return s.Wallet.IncrementPending(tx, transaction.UserId, -transaction.Amount)
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return common.NewErrorResponse("Transaction already processed", nil, http.StatusBadRequest), nil
	}

	s.Helper.RecordActivity(transaction.UserId, "transaction",
		fmt.Sprintf("Cashback transaction %s rejected: %s", transaction.TransactionNo, reason))

	return common.NewSuccessResponse(nil, "Transaction rejected"), nil
}

// ApproveWithdrawal completes a held withdrawal: the hold leaves
// pending and is counted as withdrawn.
func (s *AdminService) ApproveWithdrawal(id int) (interface{}, error) {
	transaction, errRes, err := s.loadTransaction(id, models.KindWithdrawalRequest)
	if err != nil || errRes != nil {
		return errRes, err
	}

	applied, err := s.transition(transaction, models.StatusCompleted, "", func(tx *gorm.DB) error {
		if err := s.Wallet.IncrementPending(tx, transaction.UserId, -transaction.Amount); err != nil {
			return err
		}
		return s.Wallet.IncrementWithdrawn(tx, transaction.UserId, transaction.Amount)
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return common.NewErrorResponse("Withdrawal already processed", nil, http.StatusBadRequest), nil
	}

	s.Helper.RecordActivity(transaction.UserId, "withdrawal",
		fmt.Sprintf("Withdrawal %s for %.2f approved", transaction.TransactionNo, transaction.Amount))

	return common.NewSuccessResponse(nil, "Withdrawal approved"), nil
}

// RejectWithdrawal returns a held withdrawal to the available bucket.
func (s *AdminService) RejectWithdrawal(id int, reason string) (interface{}, error) {
	transaction, errRes, err := s.loadTransaction(id, models.KindWithdrawalRequest)
	if err != nil || errRes != nil {
		return errRes, err
	}

	if reason == "" {
		reason = "rejected by admin"
	}

	applied, err := s.transition(transaction, models.StatusFailed, reason, func(tx *gorm.DB) error {
		if err := s.Wallet.IncrementPending(tx, transaction.UserId, -transaction.Amount); err != nil {
			return err
		}
		return s.Wallet.IncrementAvailable(tx, transaction.UserId, transaction.Amount)
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return common.NewErrorResponse("Withdrawal already processed", nil, http.StatusBadRequest), nil
	}

	s.Helper.RecordActivity(transaction.UserId, "withdrawal",
		fmt.Sprintf("Withdrawal %s for %.2f rejected, funds returned: %s", transaction.TransactionNo, transaction.Amount, reason))

	return common.NewSuccessResponse(nil, "Withdrawal rejected, funds returned"), nil
}

// ListPendingTransactions pages through transactions awaiting review,
// optionally filtered by kind.
func (s *AdminService) ListPendingTransactions(kind string, page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{}).Where("status = ?", models.StatusPending)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.Transaction
	if err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, "Pending transactions fetched"), nil
}
