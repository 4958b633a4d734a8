package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/repos"
)

// ActivationService decides whether a device is entitled to the full catalog
// and processes code redemption against the purchase table.
type ActivationService interface {
	// Status reads the device's stored unlock state. No purchase-store call.
	Status(ctx context.Context, deviceID string) (*domain.ActivationRecord, error)
	// Redeem runs one redemption attempt for the email+code pair on deviceID.
	Redeem(ctx context.Context, email, code, deviceID string) (*domain.ActivationRecord, error)
	// Reset clears the device's unlock record.
	Reset(ctx context.Context, deviceID string) error
	// MintUnlockToken signs a bearer of the device's unlocked state.
	MintUnlockToken(record *domain.ActivationRecord) (string, error)
	// VerifyUnlockToken validates a token and returns the bound device id.
	VerifyUnlockToken(token string) (string, error)
}

type activationService struct {
	log          *logger.Logger
	purchaseRepo repos.PurchaseRepo
	store        ActivationStore
	notifier     Notifier
	jwtSecretKey string
	unlockTTL    time.Duration
	storeTimeout time.Duration

	// Concurrent attempts for the same device+code collapse into one store
	// round trip, so a slow attempt can never clobber a newer result.
	inflight singleflight.Group
}

func NewActivationService(
	log *logger.Logger,
	purchaseRepo repos.PurchaseRepo,
	store ActivationStore,
	notifier Notifier,
	jwtSecretKey string,
	unlockTTL time.Duration,
	storeTimeout time.Duration,
) ActivationService {
	return &activationService{
		log:          log.With("service", "ActivationService"),
		purchaseRepo: purchaseRepo,
		store:        store,
		notifier:     notifier,
		jwtSecretKey: jwtSecretKey,
		unlockTTL:    unlockTTL,
		storeTimeout: storeTimeout,
	}
}

func (as *activationService) Status(ctx context.Context, deviceID string) (*domain.ActivationRecord, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, &domain.ValidationError{Field: "device_id", Reason: "must not be empty"}
	}
	record, err := as.store.Get(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("read activation record: %w", err)
	}
	if record == nil || !record.Activated {
		return nil, nil
	}
	return record, nil
}

func (as *activationService) Redeem(ctx context.Context, email, code, deviceID string) (*domain.ActivationRecord, error) {
	cleanEmail := domain.NormalizeEmail(email)
	cleanCode := domain.NormalizeCode(code)
	deviceID = strings.TrimSpace(deviceID)

	if cleanEmail == "" || !strings.Contains(cleanEmail, "@") {
		return nil, &domain.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if cleanCode == "" {
		return nil, &domain.ValidationError{Field: "code", Reason: "must not be empty"}
	}
	if deviceID == "" {
		return nil, &domain.ValidationError{Field: "device_id", Reason: "must not be empty"}
	}

	// The attempt runs detached from the caller's context: collapsed callers
	// share one result, and it must not die with whichever connection
	// happened to arrive first.
	key := deviceID + "|" + cleanCode
	result, err, _ := as.inflight.Do(key, func() (interface{}, error) {
		return as.redeemOnce(cleanEmail, cleanCode, deviceID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.ActivationRecord), nil
}

func (as *activationService) redeemOnce(email, code, deviceID string) (*domain.ActivationRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), as.storeTimeout)
	defer cancel()

	purchases, err := as.purchaseRepo.ListByStatus(ctx, nil, domain.PurchaseStatusCompleted)
	if err != nil {
		as.log.Warn("Purchase query failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// First match in store iteration order wins; codes are unique at
	// issuance so a collision would be operator error.
	var purchase *domain.Purchase
	for _, p := range purchases {
		if p.HasCode(code) && domain.NormalizeEmail(p.Email) == email {
			purchase = p
			break
		}
	}
	if purchase == nil {
		return nil, domain.ErrCodeNotFound
	}

	if purchase.HasDevice(deviceID) {
		// Re-activation of an already bound device; nothing to persist.
		return as.finishActivation(ctx, purchase, deviceID, email, code, false)
	}

	if len(purchase.DeviceIDs) >= domain.MaxDevices {
		return nil, &domain.DeviceLimitError{Limit: domain.MaxDevices}
	}

	updated := append(append([]string{}, purchase.DeviceIDs...), deviceID)
	if err := as.purchaseRepo.UpdateDeviceIDs(ctx, nil, purchase.ID, updated); err != nil {
		as.log.Warn("Device binding update failed", "purchase_id", purchase.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return as.finishActivation(ctx, purchase, deviceID, email, code, true)
}

func (as *activationService) finishActivation(ctx context.Context, purchase *domain.Purchase, deviceID, email, code string, notify bool) (*domain.ActivationRecord, error) {
	record := &domain.ActivationRecord{
		DeviceID:    deviceID,
		PurchaseID:  purchase.ID,
		Activated:   true,
		ActivatedAt: time.Now().UTC(),
	}
	if err := as.store.Set(ctx, record); err != nil {
		// The device is bound remotely; a failed local write only costs an
		// extra (idempotent) redeem later.
		as.log.Warn("Failed to persist activation record", "device_id", deviceID, "error", err)
	}

	if notify {
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := as.notifier.SendActivationConfirmation(nctx, email, code); err != nil {
				as.log.Warn("Activation confirmation email failed", "to_email", email, "error", err)
			}
		}()
	}

	bound := len(purchase.DeviceIDs)
	if notify {
		bound++
	}
	as.log.Info("Device activated", "purchase_id", purchase.ID, "device_id", deviceID, "devices_bound", bound)
	return record, nil
}

func (as *activationService) Reset(ctx context.Context, deviceID string) error {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return &domain.ValidationError{Field: "device_id", Reason: "must not be empty"}
	}
	return as.store.Clear(ctx, deviceID)
}

type unlockClaims struct {
	PurchaseID string `json:"purchase_id"`
	jwt.RegisteredClaims
}

func (as *activationService) MintUnlockToken(record *domain.ActivationRecord) (string, error) {
	claims := unlockClaims{
		PurchaseID: record.PurchaseID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   record.DeviceID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.unlockTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *activationService) VerifyUnlockToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &unlockClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("parse unlock token: %w", err)
	}
	claims, ok := parsed.Claims.(*unlockClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid unlock token")
	}
	return claims.Subject, nil
}
