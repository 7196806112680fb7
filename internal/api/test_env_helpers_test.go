package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/logging"
	"github.com/terraincognita07/ictus/internal/metrics"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	app      *fiber.App
	database *gorm.DB
	handler  *Handler
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ictus-api-test.db"), logging.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	registry := prometheus.NewRegistry()
	handler, err := NewHandler(database, Options{
		SecretKey:  testSecretKey,
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Location:   time.UTC,
		Logger:     logging.Discard(),
		Metrics:    metrics.NewCollector(registry),
		Gatherer:   registry,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(handler.ObserveRequests)
	RegisterRoutes(app, handler)
	return testEnv{app: app, database: database, handler: handler, registry: registry}
}

func (env testEnv) request(t *testing.T, method string, path string, token string, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response.StatusCode, payload
}

// expect performs the request and fails the test unless the status matches.
func (env testEnv) expect(t *testing.T, method string, path string, token string, body string, status int) []byte {
	t.Helper()

	got, payload := env.request(t, method, path, token, body)
	if got != status {
		t.Fatalf("%s %s expected status %d, got %d: %s", method, path, status, got, payload)
	}
	return payload
}

func decodeObject(t *testing.T, payload []byte) map[string]any {
	t.Helper()

	object := map[string]any{}
	if err := json.Unmarshal(payload, &object); err != nil {
		t.Fatalf("decode object %s: %v", payload, err)
	}
	return object
}

func decodeArray(t *testing.T, payload []byte) []map[string]any {
	t.Helper()

	items := make([]map[string]any, 0)
	if err := json.Unmarshal(payload, &items); err != nil {
		t.Fatalf("decode array %s: %v", payload, err)
	}
	return items
}

func expectMessage(t *testing.T, payload []byte, want string) {
	t.Helper()

	if got := decodeObject(t, payload)["message"]; got != want {
		t.Fatalf("expected message %q, got %v", want, got)
	}
}

func registrationBody(email string, birthdate string) string {
	return fmt.Sprintf(`{"first_name":"Ada","last_name":"Lovelace","email":%q,"password":"correct horse battery","birthdate":%q}`, email, birthdate)
}

// registerAndLogin returns an access token and a refresh token for a new adult user.
func (env testEnv) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()

	env.expect(t, http.MethodPost, "/api/auth/register", "", registrationBody(email, "1990-01-01"), fiber.StatusCreated)
	payload := env.expect(t, http.MethodPost, "/api/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"correct horse battery"}`, email), fiber.StatusOK)

	tokens := decodeObject(t, payload)
	access, _ := tokens["access_token"].(string)
	refresh, _ := tokens["refresh_token"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens in login response, got %s", payload)
	}
	return access, refresh
}

// createLog opens a log through the API and returns its id.
func (env testEnv) createLog(t *testing.T, token string, body string) uint {
	t.Helper()

	payload := env.expect(t, http.MethodPost, "/api/datalog/logs", token, body, fiber.StatusCreated)
	id, ok := decodeObject(t, payload)["log_id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected log_id in response, got %s", payload)
	}
	return uint(id)
}

func numberField(t *testing.T, object map[string]any, key string) uint {
	t.Helper()

	value, ok := object[key].(float64)
	if !ok {
		t.Fatalf("expected numeric %q in %v", key, object)
	}
	return uint(value)
}
