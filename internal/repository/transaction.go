package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/paylink-reconciler/internal/model"
	"gorm.io/gorm"
)

// StateUpdate is a version-checked state overwrite.
type StateUpdate struct {
	ID                   int64
	State                model.PaymentState
	PaymentLinkReference string
	ExpectedVersion      int64
	NotifiedAt           time.Time
}

type TransactionFilter struct {
	State   model.PaymentState
	OrderID string
	Limit   int
	Offset  int
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Transaction, error)
	UpdateState(ctx context.Context, update StateUpdate) error
	AttachPaymentLink(ctx context.Context, transactionID, reference, address string) error
	List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error)
	FindPollCandidates(ctx context.Context, since *time.Time, limit int) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	db := GetTx(ctx, r.db)
	err := db.Create(tx).Error
	if err == nil {
		return nil
	}

	if isDuplicate(err) {
		return ErrTransactionDuplicate
	}

	return err
}

func (r *transactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := GetTx(ctx, r.db).Where("transaction_id = ?", transactionID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *transactionRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := GetTx(ctx, r.db).Where("order_id = ?", orderID).
		Order("created_at DESC").
		Order("id DESC").
		First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *transactionRepository) UpdateState(ctx context.Context, update StateUpdate) error {
	db := GetTx(ctx, r.db)

	values := map[string]any{
		"payment_state":        update.State,
		"last_notification_at": update.NotifiedAt,
		"updated_at":           update.NotifiedAt,
		"version":              gorm.Expr("version + 1"),
	}
	if update.PaymentLinkReference != "" {
		values["payment_link_reference"] = update.PaymentLinkReference
	}

	result := db.Model(&model.Transaction{}).
		Where("id = ? AND version = ?", update.ID, update.ExpectedVersion).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.Transaction{}).Where("id = ?", update.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTransactionNotFound
	}

	return ErrVersionConflict
}

func (r *transactionRepository) AttachPaymentLink(ctx context.Context, transactionID, reference, address string) error {
	result := GetTx(ctx, r.db).Model(&model.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Updates(map[string]any{
			"payment_link_reference": reference,
			"payment_link_address":   address,
			"version":                gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, int64, error) {
	query := GetTx(ctx, r.db).Model(&model.Transaction{})
	if filter.State != "" {
		query = query.Where("payment_state = ?", filter.State)
	}
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []model.Transaction
	err := query.Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *transactionRepository) FindPollCandidates(ctx context.Context, since *time.Time, limit int) ([]model.Transaction, error) {
	query := GetTx(ctx, r.db).
		Where("payment_state IN ?", model.PendingStates).
		Where("payment_link_reference <> ''")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var txs []model.Transaction
	if err := query.Order("created_at ASC").Order("id ASC").Find(&txs).Error; err != nil {
		return nil, err
	}

	return txs, nil
}
