package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.OpenTest(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, catalog.Seed(db, catalog.Defaults))
	database.DB = db

	registry := catalog.NewRegistry()
	require.NoError(t, registry.Reload(db))

	cfg := &config.Config{
		JWTSecret:          "routes-test-secret",
		JWTAccessExpiry:    15 * time.Minute,
		JWTRefreshExpiry:   time.Hour,
		DefaultFine:        115,
		RewardRate:         0.10,
		DuplicateWindow:    2 * time.Hour,
		DuplicateTolerance: 0.001,
		SummaryCacheSize:   100,
		EvidenceMaxBytes:   1024,
		AppName:            "CurbWatch",
		CORSOrigins:        "*",
	}

	summaries := services.NewSummaryService(db, cfg)
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Setup(app, cfg, Handlers{
		Auth:     handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:   handlers.NewHealthHandler(registry),
		Legal:    handlers.NewLegalHandler(cfg),
		Catalog:  handlers.NewCatalogHandler(registry),
		Profile:  handlers.NewProfileHandler(services.NewProfileService(db)),
		Report:   handlers.NewReportHandler(services.NewReportService(db, cfg, summaries), summaries),
		Evidence: handlers.NewEvidenceHandler(services.NewEvidenceService(storage.NewMemoryStore(), cfg)),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func register(t *testing.T, app *fiber.App) dto.AuthResponse {
	t.Helper()
	resp, raw := do(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Email:    uuid.NewString() + "@example.com",
		Password: "correct-horse",
		FullName: "Rita Reporter",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &auth))
	return auth
}

func submit(t *testing.T, app *fiber.App, token string, body map[string]any) models.ViolationReport {
	t.Helper()
	resp, raw := do(t, app, "POST", "/api/reports", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var report models.ViolationReport
	require.NoError(t, json.Unmarshal(raw, &report))
	return report
}

func TestReportLifecycle(t *testing.T) {
	app := newTestApp(t)
	user := register(t, app)

	report := submit(t, app, user.AccessToken, map[string]any{
		"violation_type_id": "hydrant",
		"latitude":          40.7128,
		"longitude":         -74.0060,
		"plate_number":      "abc 123",
		"status":            "approved",
	})
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Equal(t, 115, report.FineAmount)
	assert.InDelta(t, 11.5, report.RewardAmount, 1e-9)
	assert.Equal(t, "ABC 123", report.PlateNumber)
	assert.Equal(t, user.User.ID, report.UserID)

	resp, raw := do(t, app, "GET", "/api/reports/summary", user.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var summary dto.ReportSummary
	require.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, int64(1), summary.Total)
	assert.Equal(t, int64(1), summary.Pending)
	assert.InDelta(t, 11.5, summary.PendingEarnings, 1e-9)
	assert.Zero(t, summary.SuccessRate)

	resp, raw = do(t, app, "PATCH", "/api/reports/"+report.ID.String(), user.AccessToken, map[string]any{"status": "approved"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Equal(t, "status", errResp.Field)

	resp, raw = do(t, app, "PATCH", "/api/reports/"+report.ID.String(), user.AccessToken, map[string]any{"plate_number": "xyz789"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var updated models.ViolationReport
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "XYZ789", updated.PlateNumber)
	assert.Equal(t, models.StatusPending, updated.Status)

	resp, raw = do(t, app, "GET", "/api/reports?status=pending", user.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var list struct {
		Reports []models.ViolationReport `json:"reports"`
		Total   int64                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Reports, 1)
	require.NotNil(t, list.Reports[0].ViolationType)
	assert.Equal(t, "Fire Hydrant", list.Reports[0].ViolationType.Label)
}

func TestReviewedReportIsReadOnly(t *testing.T) {
	app := newTestApp(t)
	user := register(t, app)
	report := submit(t, app, user.AccessToken, map[string]any{"violation_type_id": "bike"})

	require.NoError(t, database.DB.Model(&models.ViolationReport{}).
		Where("id = ?", report.ID).Update("status", models.StatusApproved).Error)

	resp, _ := do(t, app, "PATCH", "/api/reports/"+report.ID.String(), user.AccessToken, map[string]any{"plate_number": "NEW1"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, raw := do(t, app, "GET", "/api/reports/"+report.ID.String(), user.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.ViolationReport
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.InDelta(t, 17.5, got.RewardAmount, 1e-9)
}

func TestOtherIdentitiesCannotSeeReports(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app)
	bob := register(t, app)

	report := submit(t, app, alice.AccessToken, map[string]any{"violation_type_id": "sidewalk"})
	path := "/api/reports/" + report.ID.String()

	resp, _ := do(t, app, "GET", path, bob.AccessToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, "PATCH", path, bob.AccessToken, map[string]any{"plate_number": "HIJACK"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, raw := do(t, app, "GET", "/api/reports", bob.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"total":0`)

	resp, _ = do(t, app, "POST", "/api/reports", bob.AccessToken, map[string]any{
		"violation_type_id": "bike",
		"user_id":           alice.User.ID,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDuplicateCheckEndpoint(t *testing.T) {
	app := newTestApp(t)
	user := register(t, app)
	submit(t, app, user.AccessToken, map[string]any{
		"violation_type_id": "double",
		"latitude":          40.0,
		"longitude":         -73.0,
		"plate_number":      "dup1",
	})

	check := func(lat float64) bool {
		resp, raw := do(t, app, "POST", "/api/reports/duplicate-check", user.AccessToken, map[string]any{
			"plate_number":      "DUP1",
			"violation_type_id": "double",
			"latitude":          lat,
			"longitude":         -73.0,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
		var out dto.DuplicateCheckResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		return out.Duplicate
	}

	assert.True(t, check(40.0005))
	assert.False(t, check(40.01))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/reports", "/api/reports/summary", "/api/profile"} {
		resp, _ := do(t, app, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestPublicRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, "GET", "/api/violation-types", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		ViolationTypes []models.ViolationKind `json:"violation_types"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Len(t, body.ViolationTypes, len(catalog.Defaults))

	resp, raw = do(t, app, "GET", "/api/violation-types/disabled", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var kind models.ViolationKind
	require.NoError(t, json.Unmarshal(raw, &kind))
	assert.Equal(t, "disabled", kind.ID)
	assert.Equal(t, 180, kind.Fine)

	resp, _ = do(t, app, "GET", "/api/violation-types/parking-on-the-moon", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, raw = do(t, app, "GET", "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, len(catalog.Defaults), health.CatalogCount)

	resp, raw = do(t, app, "GET", "/api/legal/privacy", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "CurbWatch")
}

func TestProfileEndpoints(t *testing.T) {
	app := newTestApp(t)
	user := register(t, app)

	resp, raw := do(t, app, "GET", "/api/profile", user.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var profile models.Profile
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, user.User.ID, profile.ID)
	assert.Equal(t, "Rita Reporter", profile.FullName)
	assert.Equal(t, models.PayoutBankTransfer, profile.PayoutMethod)

	resp, raw = do(t, app, "PATCH", "/api/profile", user.AccessToken, map[string]any{"bank_last4": "12a4"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), `"field":"bank_last4"`)

	resp, raw = do(t, app, "PATCH", "/api/profile", user.AccessToken, map[string]any{
		"bank_last4":    "4242",
		"payout_method": "venmo",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, "4242", profile.BankLast4)
	assert.Equal(t, models.PayoutVenmo, profile.PayoutMethod)
}

func uploadRequest(t *testing.T, token, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="car.jpg"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/evidence", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestEvidenceUploadAndDownload(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app)
	bob := register(t, app)

	resp, err := app.Test(uploadRequest(t, alice.AccessToken, "image/jpeg", []byte("jpeg-bytes")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var uploaded dto.EvidenceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Regexp(t, "^"+alice.User.ID.String()+`/\d+-[0-9a-f]{8}\.jpg$`, uploaded.Key)

	resp, raw := do(t, app, "GET", "/api/evidence/"+uploaded.Key, alice.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", string(raw))

	resp, _ = do(t, app, "GET", "/api/evidence/"+uploaded.Key, bob.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(uploadRequest(t, alice.AccessToken, "application/pdf", []byte("%PDF")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
