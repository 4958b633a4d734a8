package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	httpH "github.com/puzlabu/puzlabu-backend/internal/http/handlers"
	httpMW "github.com/puzlabu/puzlabu-backend/internal/http/middleware"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type stubPurchaseRepo struct {
	purchases []*domain.Purchase
}

func (s *stubPurchaseRepo) Create(ctx context.Context, tx *gorm.DB, purchases []*domain.Purchase) ([]*domain.Purchase, error) {
	s.purchases = append(s.purchases, purchases...)
	return purchases, nil
}

func (s *stubPurchaseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, purchaseIDs []uuid.UUID) ([]*domain.Purchase, error) {
	var out []*domain.Purchase
	for _, p := range s.purchases {
		for _, id := range purchaseIDs {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *stubPurchaseRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status domain.PurchaseStatus) ([]*domain.Purchase, error) {
	var out []*domain.Purchase
	for _, p := range s.purchases {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPurchaseRepo) UpdateDeviceIDs(ctx context.Context, tx *gorm.DB, purchaseID uuid.UUID, deviceIDs []string) error {
	for _, p := range s.purchases {
		if p.ID == purchaseID {
			p.DeviceIDs = datatypes.NewJSONSlice(deviceIDs)
			return nil
		}
	}
	return fmt.Errorf("purchase %s not found", purchaseID)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	repo := &stubPurchaseRepo{purchases: []*domain.Purchase{{
		ID:              uuid.New(),
		Email:           "buyer@x.com",
		PayPalOrderID:   "PAYPAL-1",
		ActivationCodes: datatypes.NewJSONSlice([]string{"ABCD-EFGH-JKLM"}),
		DeviceIDs:       datatypes.NewJSONSlice([]string{}),
		Amount:          20,
		Status:          domain.PurchaseStatusCompleted,
	}}}

	notifier := services.NewNotifier(log, nil)
	activation := services.NewActivationService(log, repo, services.NewMemoryActivationStore(), notifier, "test-secret", time.Hour, 5*time.Second)
	catalog, err := services.NewCatalogService(log, "")
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	games := services.NewGameService(log, catalog, time.Minute)
	purchases := services.NewPurchaseService(log, repo, notifier, 1)

	return NewRouter(RouterConfig{
		Log:               log,
		UnlockMiddleware:  httpMW.NewUnlockMiddleware(log, activation),
		ActivationHandler: httpH.NewActivationHandler(activation),
		CatalogHandler:    httpH.NewCatalogHandler(catalog),
		GameHandler:       httpH.NewGameHandler(games, catalog),
		PurchaseHandler:   httpH.NewPurchaseHandler(purchases),
		HealthHandler:     httpH.NewHealthHandler(),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var parsed map[string]any
	if len(rec.Body.Bytes()) > 0 && rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRedeemFlow(t *testing.T) {
	r := newTestRouter(t)

	rec, body := doJSON(t, r, http.MethodPost, "/api/activation/redeem", "", map[string]any{
		"email":     "Buyer@X.com",
		"code":      "abcd-efgh-jklm",
		"device_id": "device-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("redeem status = %d body=%s", rec.Code, rec.Body.String())
	}
	if body["activated"] != true {
		t.Fatalf("activated = %v", body["activated"])
	}
	token, _ := body["unlock_token"].(string)
	if token == "" {
		t.Fatal("no unlock token in redeem response")
	}

	rec, body = doJSON(t, r, http.MethodGet, "/api/activation/status?device_id=device-1", "", nil)
	if rec.Code != http.StatusOK || body["activated"] != true {
		t.Fatalf("status after redeem = %d %v", rec.Code, body)
	}

	// reset is for the token-holding device only
	rec, _ = doJSON(t, r, http.MethodPost, "/api/activation/reset", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reset without token status = %d, want 401", rec.Code)
	}

	rec, body = doJSON(t, r, http.MethodPost, "/api/activation/reset", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}
	rec, body = doJSON(t, r, http.MethodGet, "/api/activation/status?device_id=device-1", "", nil)
	if rec.Code != http.StatusOK || body["activated"] != false {
		t.Fatalf("status after reset = %d %v", rec.Code, body)
	}
}

func TestRedeemErrorMapping(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			"unknown_code",
			map[string]any{"email": "buyer@x.com", "code": "ZZZZ-ZZZZ-ZZZZ", "device_id": "d"},
			http.StatusNotFound, "code_not_found",
		},
		{
			"wrong_email",
			map[string]any{"email": "other@x.com", "code": "ABCD-EFGH-JKLM", "device_id": "d"},
			http.StatusNotFound, "code_not_found",
		},
		{
			"bad_email",
			map[string]any{"email": "nope", "code": "ABCD-EFGH-JKLM", "device_id": "d"},
			http.StatusBadRequest, "invalid_request",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := doJSON(t, r, http.MethodPost, "/api/activation/redeem", "", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			env, _ := body["error"].(map[string]any)
			if env == nil || env["code"] != tc.wantCode {
				t.Fatalf("error envelope = %v, want code %q", body, tc.wantCode)
			}
		})
	}
}

func TestDeviceLimitOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	for i := 1; i <= domain.MaxDevices; i++ {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/activation/redeem", "", map[string]any{
			"email": "buyer@x.com", "code": "ABCD-EFGH-JKLM", "device_id": fmt.Sprintf("device-%d", i),
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("redeem %d status = %d", i, rec.Code)
		}
	}

	rec, body := doJSON(t, r, http.MethodPost, "/api/activation/redeem", "", map[string]any{
		"email": "buyer@x.com", "code": "ABCD-EFGH-JKLM", "device_id": "device-over",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	env, _ := body["error"].(map[string]any)
	if env == nil || env["code"] != "device_limit_reached" {
		t.Fatalf("error envelope = %v", body)
	}
}

func TestCatalogGating(t *testing.T) {
	r := newTestRouter(t)

	rec, body := doJSON(t, r, http.MethodGet, "/api/catalog", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog status = %d", rec.Code)
	}
	images, _ := body["images"].([]any)
	if len(images) == 0 {
		t.Fatal("empty catalog")
	}
	for _, raw := range images {
		img := raw.(map[string]any)
		locked, _ := img["locked"].(bool)
		url, _ := img["url"].(string)
		if locked && url != "" {
			t.Fatalf("locked entry %v exposes url", img["id"])
		}
		if img["demo"] == true && (locked || url == "") {
			t.Fatalf("demo entry gated: %v", img)
		}
	}

	rec, body = doJSON(t, r, http.MethodPost, "/api/activation/redeem", "", map[string]any{
		"email": "buyer@x.com", "code": "ABCD-EFGH-JKLM", "device_id": "device-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("redeem status = %d", rec.Code)
	}
	token := body["unlock_token"].(string)

	_, body = doJSON(t, r, http.MethodGet, "/api/catalog", token, nil)
	for _, raw := range body["images"].([]any) {
		img := raw.(map[string]any)
		if img["locked"] == true {
			t.Fatalf("entry %v still locked with token", img["id"])
		}
		if url, _ := img["url"].(string); url == "" {
			t.Fatalf("unlocked entry %v has no url", img["id"])
		}
	}
}

func TestGameGating(t *testing.T) {
	r := newTestRouter(t)

	_, body := doJSON(t, r, http.MethodGet, "/api/catalog", "", nil)
	images := body["images"].([]any)
	var demoID, lockedID string
	for _, raw := range images {
		img := raw.(map[string]any)
		if img["demo"] == true {
			demoID = img["id"].(string)
		} else if lockedID == "" {
			lockedID = img["id"].(string)
		}
	}
	if demoID == "" || lockedID == "" {
		t.Fatalf("catalog lacks demo or locked entry: %v", images)
	}

	// demo playable without activation
	rec, body := doJSON(t, r, http.MethodPost, "/api/games", "", map[string]any{"puzzle_id": demoID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("demo game status = %d body=%s", rec.Code, rec.Body.String())
	}
	gameID := body["id"].(string)

	// locked image rejected without a token
	rec, _ = doJSON(t, r, http.MethodPost, "/api/games", "", map[string]any{"puzzle_id": lockedID})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("locked game status = %d, want 401", rec.Code)
	}

	// and allowed with one
	rec, respBody := doJSON(t, r, http.MethodPost, "/api/activation/redeem", "", map[string]any{
		"email": "buyer@x.com", "code": "ABCD-EFGH-JKLM", "device_id": "device-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("redeem status = %d", rec.Code)
	}
	token := respBody["unlock_token"].(string)
	rec, _ = doJSON(t, r, http.MethodPost, "/api/games", token, map[string]any{"puzzle_id": lockedID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("unlocked game status = %d body=%s", rec.Code, rec.Body.String())
	}

	// moves against the demo game
	rec, _ = doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/pointer", "", map[string]any{"action": "down", "slot": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("pointer down status = %d body=%s", rec.Code, rec.Body.String())
	}
	rec, body = doJSON(t, r, http.MethodPost, "/api/games/"+gameID+"/restart", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("restart status = %d", rec.Code)
	}
	if body["moves"].(float64) != 0 {
		t.Fatalf("moves after restart = %v", body["moves"])
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/games/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown game status = %d, want 404", rec.Code)
	}
}

func TestRecordPurchaseOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	rec, body := doJSON(t, r, http.MethodPost, "/api/purchases", "", map[string]any{
		"email": "new@x.com", "paypal_order_id": "PAYPAL-9", "amount": 20.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("purchase status = %d body=%s", rec.Code, rec.Body.String())
	}
	if body["purchase_id"] == "" || body["codes"].(float64) != 1 {
		t.Fatalf("purchase response = %v", body)
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/api/purchases", "", map[string]any{
		"email": "bad", "paypal_order_id": "PAYPAL-10", "amount": 20.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid purchase status = %d, want 400", rec.Code)
	}

	// confirmation view by purchase id
	purchaseID := body["purchase_id"].(string)
	rec, body = doJSON(t, r, http.MethodGet, "/api/purchases/"+purchaseID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get purchase status = %d", rec.Code)
	}
	if body["purchase_id"] != purchaseID || body["devices_bound"].(float64) != 0 {
		t.Fatalf("purchase view = %v", body)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/purchases/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown purchase status = %d, want 404", rec.Code)
	}
}
