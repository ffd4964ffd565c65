package services

import (
	"fmt"
	"net/http"

	"cashback-service/internal/models"
	"cashback-service/pkg/common"

	"gorm.io/gorm"
)

// WalletService owns the per-user balance buckets. Every mutation is
// an atomic relative update at the storage layer; nothing here reads a
// balance into memory and writes it back.
type WalletService struct {
	DB     *gorm.DB
	Helper *HelperService
}

func NewWalletService(db *gorm.DB, helper *HelperService) *WalletService {
	return &WalletService{DB: db, Helper: helper}
}

// EnsureWallet creates the wallet row on first touch.
func (s *WalletService) EnsureWallet(tx *gorm.DB, userId int) error {
	if tx == nil {
		tx = s.DB
	}
	var wallet models.Wallet
	return tx.Where(models.Wallet{UserId: userId}).FirstOrCreate(&wallet).Error
}

func (s *WalletService) increment(tx *gorm.DB, userId int, column string, delta float64) error {
	if tx == nil {
		tx = s.DB
	}
	return tx.Model(&models.Wallet{}).
		Where("user_id = ?", userId).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (s *WalletService) IncrementPending(tx *gorm.DB, userId int, delta float64) error {
	return s.increment(tx, userId, "pending_cashback", delta)
}

func (s *WalletService) IncrementAvailable(tx *gorm.DB, userId int, delta float64) error {
	return s.increment(tx, userId, "available_cashback", delta)
}

func (s *WalletService) IncrementTotal(tx *gorm.DB, userId int, delta float64) error {
	return s.increment(tx, userId, "total_cashback", delta)
}

func (s *WalletService) IncrementWithdrawn(tx *gorm.DB, userId int, delta float64) error {
	return s.increment(tx, userId, "withdrawn_cashback", delta)
}

// DebitAvailableGuarded moves amount out of the available bucket only
// when the bucket covers it. The balance check and the decrement are a
// single conditional UPDATE, so concurrent debits that together exceed
// the balance cannot all succeed. Returns false when the guard failed.
func (s *WalletService) DebitAvailableGuarded(tx *gorm.DB, userId int, amount float64) (bool, error) {
	if tx == nil {
		tx = s.DB
	}
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND available_cashback >= ?", userId, amount).
		UpdateColumn("available_cashback", gorm.Expr("available_cashback - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *WalletService) GetWallet(userId int) (interface{}, error) {
	var wallet models.Wallet
	if err := s.DB.Where("user_id = ?", userId).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return common.NewErrorResponse("Wallet not found", nil, http.StatusNotFound), nil
		}
		return nil, err
	}
	return common.NewSuccessResponse(wallet, "Wallet fetched"), nil
}

func (s *WalletService) GetTransactions(userId, page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{}).Where("user_id = ?", userId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, "Transactions fetched"), nil
}

type WithdrawRequestDTO struct {
	UserId        int
	Amount        float64
	PaymentMethod string
	PaymentHandle string
}

// RequestWithdrawal holds funds for admin review: available decreases,
// pending increases, and a withdrawal_request transaction is written,
// all in one storage transaction. A request exceeding the available
// balance is rejected before any mutation.
func (s *WalletService) RequestWithdrawal(data WithdrawRequestDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewErrorResponse("Withdrawal amount must be positive", nil, http.StatusBadRequest), nil
	}

	var created models.Transaction
	insufficient := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.DebitAvailableGuarded(tx, data.UserId, data.Amount)
		if err != nil {
			return err
		}
		if !ok {
			insufficient = true
			return nil
		}
		if err := s.IncrementPending(tx, data.UserId, data.Amount); err != nil {
			return err
		}

		created = models.Transaction{
			UserId:        data.UserId,
			TransactionNo: common.GenerateTrxNo(),
			Amount:        data.Amount,
			Kind:          models.KindWithdrawalRequest,
			Status:        models.StatusPending,
			Description:   fmt.Sprintf("Withdrawal request via %s: %s", data.PaymentMethod, data.PaymentHandle),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	if insufficient {
		return common.NewErrorResponse("Insufficient balance", nil, http.StatusBadRequest), nil
	}

	s.Helper.RecordActivity(data.UserId, "withdrawal",
		fmt.Sprintf("Withdrawal request %s for %.2f submitted", created.TransactionNo, data.Amount))

	return common.NewSuccessResponse(created, "Withdrawal request submitted"), nil
}
