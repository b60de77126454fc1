package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}
}

func newRouter(cfg *config.Config, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(zap.NewNop()))

	handlers := []gin.HandlerFunc{AuthMiddleware(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := UserID(c)
		actor := audit.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user_id":  id,
			"role":     c.GetString(ContextUserRole),
			"actor_ok": actor != nil && *actor == id,
		})
	})
	r.GET("/secured", handlers...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg)
	userID := uuid.New()

	valid, err := IssueToken(cfg, userID, "client", time.Now())
	require.NoError(t, err)

	expired, err := IssueToken(cfg, userID, "client", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	otherKey, err := IssueToken(&config.Config{JWTSecret: "other", JWTTTL: time.Hour}, userID, "client", time.Now())
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "admin",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + otherKey, http.StatusUnauthorized},
		{"alg none", "Bearer " + noneAlg, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, tc.header)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
				assert.Contains(t, w.Body.String(), `"actor_ok":true`)
			}
		})
	}
}

func TestAuthMiddleware_NonUUIDSubject(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "42",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	w := do(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token_payload")
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg, "doctor", "admin")

	doctor, err := IssueToken(cfg, uuid.New(), "doctor", time.Now())
	require.NoError(t, err)
	client, err := IssueToken(cfg, uuid.New(), "client", time.Now())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+doctor).Code)

	w := do(r, "Bearer "+client)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	generated := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://clinic.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))
}
