package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "campuscash/internal/errors"
	"campuscash/internal/logger"
	"campuscash/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

const testSecret = "test-secret"

func testUser() *models.User {
	return &models.User{
		Base:  models.Base{ID: "0190f3a4-7b2c-7d3e-8f40-123456789abc"},
		Email: "alice@example.com",
	}
}

func setupAuthRouter(m *TokenManager) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(UserIDKey), "email": c.GetString(EmailKey)})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 7*24*time.Hour)
	token, err := m.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != testUser().ID || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.Issuer != "campuscash-api" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("lifetime = %v, want 168h", got)
	}
}

func TestMiddleware(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	valid, err := m.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	expiredManager := NewTokenManager(testSecret, time.Hour)
	expiredManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredManager.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	forged, err := NewTokenManager("other-secret", time.Hour).Generate(testUser())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{
		UserID: testUser().ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	r := setupAuthRouter(m)

	t.Run("valid_token", func(t *testing.T) {
		rec := doRequest(r, "Bearer "+valid)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := parseBody(t, rec)
		if body["userID"] != testUser().ID || body["email"] != "alice@example.com" {
			t.Errorf("unexpected context values %v", body)
		}
	})

	rejected := map[string]string{
		"missing_header": "",
		"wrong_scheme":   "Basic " + valid,
		"empty_token":    "Bearer ",
		"garbage":        "Bearer not.a.jwt",
		"expired":        "Bearer " + expired,
		"forged":         "Bearer " + forged,
		"wrong_issuer":   "Bearer " + wrongIssuer,
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(r, header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			errBody, ok := parseBody(t, rec)["error"].(map[string]interface{})
			if !ok {
				t.Fatalf("expected error object, got %s", rec.Body.String())
			}
			if errBody["code"] != "UNAUTHORIZED" || errBody["message"] != "Authentication required" {
				t.Errorf("non-uniform rejection: %v", errBody)
			}
		})
	}
}

func setupErrorRouter(err error) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/test", func(c *gin.Context) {
		_ = c.Error(err)
	})
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("app_error_with_fields", func(t *testing.T) {
		r := setupErrorRouter(apperrors.WithFields(apperrors.ErrInvalidInput, map[string]string{"amount": "Amount is required"}))
		rec := doRequest(r, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		errBody := parseBody(t, rec)["error"].(map[string]interface{})
		fields, ok := errBody["fields"].(map[string]interface{})
		if !ok || fields["amount"] != "Amount is required" {
			t.Errorf("fields = %v", errBody["fields"])
		}
	})

	t.Run("wrapped_internal_hides_cause", func(t *testing.T) {
		r := setupErrorRouter(apperrors.Wrap(apperrors.ErrInternalServer, errors.New("pq: connection refused")))
		rec := doRequest(r, "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		errBody := parseBody(t, rec)["error"].(map[string]interface{})
		if errBody["message"] != apperrors.ErrInternalServer.Message {
			t.Errorf("message = %v", errBody["message"])
		}
		if _, ok := errBody["fields"]; ok {
			t.Error("fields must be omitted when empty")
		}
	})

	t.Run("plain_error", func(t *testing.T) {
		r := setupErrorRouter(errors.New("boom"))
		rec := doRequest(r, "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if code := parseBody(t, rec)["error"].(map[string]interface{})["code"]; code != "INTERNAL_ERROR" {
			t.Errorf("code = %v", code)
		}
	})
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := doRequest(r, "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/test", http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing allow-origin header")
	}
}
