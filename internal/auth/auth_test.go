package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/config"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		LoginRatePerSec: 100,
		LoginBurst:      100,
	}
}

// newTestApp wires the auth routes plus a protected probe endpoint.
func newTestApp(h *Handler, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	secret := []byte(cfg.JWTSecret)
	app.Post("/api/login", h.Login)
	app.Post("/api/register", h.Register)
	app.Get("/api/me", RequireAuth(secret), h.Me)
	app.Get("/api/admin-only", RequireAuth(secret), RequireRole(models.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

// Seeded fixture accounts log in with their documented plaintext passwords.
func Test_Login_FixtureAccounts(t *testing.T) {
	st := store.New()
	st.Seed()
	cfg := testConfig()
	app := newTestApp(NewHandler(st, cfg), cfg)

	req := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"admin@sudindconnect.com","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out AuthResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out.Role != string(models.RoleAdmin) || out.Token == "" {
		t.Fatalf("want admin token, got %#v", out)
	}

	// Email lookup is case-insensitive.
	req2 := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"ADMIN@sudindconnect.com","password":"admin123"}`))
	req2.Header.Set("Content-Type", "application/json")
	resp2, _ := app.Test(req2)
	if resp2.StatusCode != 200 {
		t.Fatalf("uppercase email want 200, got %d", resp2.StatusCode)
	}

	// Wrong password → 401, same as unknown email.
	req3 := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"admin@sudindconnect.com","password":"nope"}`))
	req3.Header.Set("Content-Type", "application/json")
	resp3, _ := app.Test(req3)
	if resp3.StatusCode != 401 {
		t.Fatalf("bad password want 401, got %d", resp3.StatusCode)
	}
}

// Inactive accounts are rejected even with the right password.
func Test_Login_InactiveAccountRejected(t *testing.T) {
	st := store.New()
	u := st.AddUser(store.UserInput{
		Role: models.RoleClient, Name: "C", Email: "c@x.com", Password: "secret1",
		ClientType: models.ClientPatient,
	})
	inactive := models.UserInactive
	if _, err := st.UpdateUser(u.ID, store.UserPatch{Status: &inactive}); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	app := newTestApp(NewHandler(st, cfg), cfg)
	req := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"c@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != 401 {
		t.Fatalf("inactive account want 401, got %d", resp.StatusCode)
	}
}

// Registration creates a client account, rejects duplicates, and the issued
// token works against /me.
func Test_Register_Then_Me(t *testing.T) {
	st := store.New()
	cfg := testConfig()
	app := newTestApp(NewHandler(st, cfg), cfg)

	body := `{"name":"New Client","email":"New@Example.com","password":"secret1","client_type":"student"}`
	req := httptest.NewRequest("POST", "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != 201 {
		t.Fatalf("register want 201, got %d", resp.StatusCode)
	}
	var out AuthResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out.Role != string(models.RoleClient) {
		t.Fatalf("self-registration should yield a client, got %q", out.Role)
	}

	// Duplicate email (different casing) conflicts.
	req2 := httptest.NewRequest("POST", "/api/register", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	resp2, _ := app.Test(req2)
	if resp2.StatusCode != 409 {
		t.Fatalf("duplicate want 409, got %d", resp2.StatusCode)
	}

	// Token round-trips through RequireAuth.
	req3 := httptest.NewRequest("GET", "/api/me", nil)
	req3.Header.Set("Authorization", "Bearer "+out.Token)
	resp3, _ := app.Test(req3)
	if resp3.StatusCode != 200 {
		t.Fatalf("me want 200, got %d", resp3.StatusCode)
	}
	var me models.User
	_ = json.NewDecoder(resp3.Body).Decode(&me)
	if me.Email != "new@example.com" {
		t.Fatalf("email should be normalized lowercase, got %q", me.Email)
	}
}

// Registration without a client_type is a validation error.
func Test_Register_RequiresClientType(t *testing.T) {
	st := store.New()
	cfg := testConfig()
	app := newTestApp(NewHandler(st, cfg), cfg)

	req := httptest.NewRequest("POST", "/api/register",
		strings.NewReader(`{"name":"X Y","email":"x@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != 400 {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var out models.ValidationErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if _, ok := out.Errors["client_type"]; !ok {
		t.Fatalf("errors should name client_type, got %#v", out.Errors)
	}
}

// RequireAuth rejects missing and garbage tokens; RequireRole enforces role.
func Test_Middleware_AuthAndRole(t *testing.T) {
	st := store.New()
	st.Seed()
	cfg := testConfig()
	app := newTestApp(NewHandler(st, cfg), cfg)

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/me", nil))
	if resp.StatusCode != 401 {
		t.Fatalf("no token want 401, got %d", resp.StatusCode)
	}

	bad := httptest.NewRequest("GET", "/api/me", nil)
	bad.Header.Set("Authorization", "Bearer not-a-jwt")
	resp2, _ := app.Test(bad)
	if resp2.StatusCode != 401 {
		t.Fatalf("garbage token want 401, got %d", resp2.StatusCode)
	}

	// A client token cannot reach an admin-only route.
	login := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"ahmed@example.com","password":"client123"}`))
	login.Header.Set("Content-Type", "application/json")
	lr, _ := app.Test(login)
	if lr.StatusCode != 200 {
		t.Fatalf("client login want 200, got %d", lr.StatusCode)
	}
	var out AuthResponse
	_ = json.NewDecoder(lr.Body).Decode(&out)

	req := httptest.NewRequest("GET", "/api/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp3, _ := app.Test(req)
	if resp3.StatusCode != 403 {
		t.Fatalf("client on admin route want 403, got %d", resp3.StatusCode)
	}
}

// A drained token bucket turns logins into 429s.
func Test_LoginLimiter_Throttles(t *testing.T) {
	st := store.New()
	st.Seed()
	cfg := testConfig()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/api/login", LoginLimiter(0.1, 2), NewHandler(st, cfg).Login)

	body := `{"email":"admin@sudindconnect.com","password":"admin123"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != 200 {
			t.Fatalf("attempt %d want 200, got %d", i+1, resp.StatusCode)
		}
	}

	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != 429 {
		t.Fatalf("drained bucket want 429, got %d", resp.StatusCode)
	}
}
