package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/repos"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

// PurchaseService records captured orders. Payment capture itself happens in
// the PayPal widget; this is the sole writer that creates purchase rows and
// the sole issuer of activation codes.
type PurchaseService interface {
	RecordCompletedOrder(ctx context.Context, email, paypalOrderID string, amount float64) (*domain.Purchase, error)
	// GetOrder fetches one purchase row by id, for order confirmation pages.
	GetOrder(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error)
}

type purchaseService struct {
	log              *logger.Logger
	purchaseRepo     repos.PurchaseRepo
	notifier         Notifier
	codesPerPurchase int
}

func NewPurchaseService(log *logger.Logger, purchaseRepo repos.PurchaseRepo, notifier Notifier, codesPerPurchase int) PurchaseService {
	if codesPerPurchase <= 0 {
		codesPerPurchase = 1
	}
	return &purchaseService{
		log:              log.With("service", "PurchaseService"),
		purchaseRepo:     purchaseRepo,
		notifier:         notifier,
		codesPerPurchase: codesPerPurchase,
	}
}

func (ps *purchaseService) RecordCompletedOrder(ctx context.Context, email, paypalOrderID string, amount float64) (*domain.Purchase, error) {
	cleanEmail := domain.NormalizeEmail(email)
	paypalOrderID = strings.TrimSpace(paypalOrderID)

	if cleanEmail == "" || !strings.Contains(cleanEmail, "@") {
		return nil, &domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if paypalOrderID == "" {
		return nil, &domain.ValidationError{Field: "paypal_order_id", Reason: "must not be empty"}
	}
	if amount <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	codes := make([]string, 0, ps.codesPerPurchase)
	seen := make(map[string]bool, ps.codesPerPurchase)
	for len(codes) < ps.codesPerPurchase {
		code := domain.NewActivationCode()
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	purchase := &domain.Purchase{
		ID:              uuid.New(),
		Email:           cleanEmail,
		PayPalOrderID:   paypalOrderID,
		ActivationCodes: datatypes.NewJSONSlice(codes),
		DeviceIDs:       datatypes.NewJSONSlice([]string{}),
		Amount:          amount,
		Status:          domain.PurchaseStatusCompleted,
	}

	created, err := ps.purchaseRepo.Create(ctx, nil, []*domain.Purchase{purchase})
	if err != nil {
		ps.log.Warn("Purchase insert failed", "paypal_order_id", paypalOrderID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := ps.notifier.SendPurchaseCodes(nctx, cleanEmail, codes, paypalOrderID); err != nil {
			ps.log.Warn("Purchase codes email failed", "to_email", cleanEmail, "error", err)
		}
	}()

	ps.log.Info("Purchase recorded", "purchase_id", created[0].ID, "paypal_order_id", paypalOrderID, "codes", len(codes))
	return created[0], nil
}

func (ps *purchaseService) GetOrder(ctx context.Context, purchaseID uuid.UUID) (*domain.Purchase, error) {
	rows, err := ps.purchaseRepo.GetByIDs(ctx, nil, []uuid.UUID{purchaseID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, ErrPurchaseNotFound
	}
	return rows[0], nil
}
