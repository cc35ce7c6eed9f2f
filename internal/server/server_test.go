package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodbridge/internal/config"
	"foodbridge/internal/database"
	"foodbridge/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server over an in-memory SQLite database with
// no Redis, wired to a Fiber app with the full route table.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	cfg := &config.Config{Port: "8264", Env: "test"}
	s := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates a donor through the API and returns its
// session token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/donor/register", "", fiber.Map{"username": username})
	require.Equal(t, http.StatusCreated, status)
	password, _ := body["password"].(string)
	require.NotEmpty(t, password)

	status, body = doJSON(t, app, http.MethodPost, "/api/donor/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func registerStore(t *testing.T, app *fiber.App, token, name string) {
	t.Helper()
	status, _ := doJSON(t, app, http.MethodPost, "/api/donor/store", token, fiber.Map{
		"name":      name,
		"latitude":  46.05,
		"longitude": 14.5,
	})
	require.Equal(t, http.StatusCreated, status)
}

func createFoodItem(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/donor/food", token, fiber.Map{
		"name":            name,
		"description":     "still fresh",
		"expiration_date": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestRegisterDonor(t *testing.T) {
	_, app := newTestServer(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/donor/register", "", fiber.Map{"username": "bakery"})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "bakery", body["username"])
	assert.Regexp(t, `^[A-Z0-9]{8}$`, body["password"])

	t.Run("Duplicate username", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/donor/register", "", fiber.Map{"username": "bakery"})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeConflict, body["code"])
	})

	t.Run("Missing username", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/donor/register", "", fiber.Map{"username": "  "})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, models.CodeValidation, body["code"])
	})
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/donor/register", "", fiber.Map{"username": "deli"})
	require.Equal(t, http.StatusCreated, status)
	password := body["password"].(string)

	t.Run("Valid credentials", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/donor/login", "", fiber.Map{
			"username": "deli",
			"password": password,
		})
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/donor/login", "", fiber.Map{
			"username": "deli",
			"password": "WRONGPW1",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, models.CodeUnauthorized, body["code"])
	})

	t.Run("Unknown user", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/donor/login", "", fiber.Map{
			"username": "nobody",
			"password": "WHATEVER",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, app := newTestServer(t)

	status, _ := doJSON(t, app, http.MethodGet, "/api/donor/store", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/donor/food", "garbage-token", fiber.Map{"name": "Bread"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestStoreRegistration(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "grocer")

	t.Run("No store yet", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/donor/store", token, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, models.CodeNotFound, body["code"])
	})

	t.Run("Register and fetch", func(t *testing.T) {
		registerStore(t, app, token, "Corner Grocer")

		status, body := doJSON(t, app, http.MethodGet, "/api/donor/store", token, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Corner Grocer", body["name"])
	})

	t.Run("Second store is rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/donor/store", token, fiber.Map{
			"name":      "Second Location",
			"latitude":  46.0,
			"longitude": 14.0,
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeConflict, body["code"])
	})

	t.Run("Invalid coordinates", func(t *testing.T) {
		token := registerAndLogin(t, app, "grocer2")
		status, _ := doJSON(t, app, http.MethodPost, "/api/donor/store", token, fiber.Map{
			"name":      "Nowhere",
			"latitude":  123.0,
			"longitude": 14.0,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestCreateFoodItem(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "bistro")

	t.Run("Requires a store", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/donor/food", token, fiber.Map{
			"name":            "Soup",
			"expiration_date": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, models.CodeValidation, body["code"])
	})

	t.Run("Created item is listed as available", func(t *testing.T) {
		registerStore(t, app, token, "Bistro Central")
		createFoodItem(t, app, token, "Day-old Soup")

		req := httptest.NewRequest(http.MethodGet, "/api/recipient/available-food", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var items []models.FoodItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "Day-old Soup", items[0].Name)
	})

	t.Run("Missing expiration date", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/donor/food", token, fiber.Map{"name": "Bread"})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestClaimAndPickupFlow(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "owner")
	registerStore(t, app, token, "Owner's Market")
	itemID := createFoodItem(t, app, token, "Pastries")

	claimPath := fmt.Sprintf("/api/recipient/claim/%s", itemID)
	pickupPath := fmt.Sprintf("/api/donor/food/%s/pickup", itemID)

	t.Run("Pickup before claim", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, pickupPath, token, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeNotYetClaimed, body["code"])
	})

	var claimCode string
	t.Run("Claim succeeds once", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, claimPath, "", fiber.Map{"claimer_name": "Jane Doe"})
		require.Equal(t, http.StatusOK, status)
		claimCode, _ = body["claim_code"].(string)
		assert.Regexp(t, `^[A-Z0-9]{6}$`, claimCode)

		status, body = doJSON(t, app, http.MethodPost, claimPath, "", fiber.Map{"claimer_name": "John Smith"})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeAlreadyClaimed, body["code"])
	})

	t.Run("Other donor cannot confirm pickup", func(t *testing.T) {
		other := registerAndLogin(t, app, "intruder")
		registerStore(t, app, other, "Intruder's Stand")

		status, body := doJSON(t, app, http.MethodPost, pickupPath, other, nil)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, models.CodeForbidden, body["code"])
	})

	t.Run("Owner confirms pickup", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, pickupPath, token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["is_picked_up"])
		assert.Equal(t, claimCode, body["claim_code"], "pickup must preserve the claim code")
	})

	t.Run("Pickup is terminal", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, pickupPath, token, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, models.CodeAlreadyPickedUp, body["code"])
	})
}

func TestClaimValidation(t *testing.T) {
	_, app := newTestServer(t)

	t.Run("Malformed item ID", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/recipient/claim/not-a-uuid", "", fiber.Map{"claimer_name": "Jane"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Unknown item", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/recipient/claim/6b1f6f3a-9c2f-4e61-8c77-0f63d1e2a001", "", fiber.Map{"claimer_name": "Jane"})
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestHealthCheck(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
