package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

type PurchaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, purchases []*domain.Purchase) ([]*domain.Purchase, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, purchaseIDs []uuid.UUID) ([]*domain.Purchase, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status domain.PurchaseStatus) ([]*domain.Purchase, error)
	UpdateDeviceIDs(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, deviceIDs []string) error
}

type purchaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
	return &purchaseRepo{db: db, log: baseLog.With("repo", "PurchaseRepo")}
}

func (pr *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, purchases []*domain.Purchase) ([]*domain.Purchase, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(purchases) == 0 {
		return []*domain.Purchase{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&purchases).Error; err != nil {
		return nil, err
	}

	return purchases, nil
}

func (pr *purchaseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, purchaseIDs []uuid.UUID) ([]*domain.Purchase, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*domain.Purchase

	if len(purchaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", purchaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// ListByStatus returns every purchase with the given payment status in
// insertion order. Code/email matching happens in the activation service;
// first match in this order wins.
func (pr *purchaseRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status domain.PurchaseStatus) ([]*domain.Purchase, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*domain.Purchase

	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (pr *purchaseRepo) UpdateDeviceIDs(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, deviceIDs []string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Purchase{}).
		Where("id = ?", purchaseID).
		Update("device_ids", datatypes.NewJSONSlice(deviceIDs)).Error; err != nil {
		return err
	}

	return nil
}
