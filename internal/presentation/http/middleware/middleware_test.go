package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/application/service"
	"github.com/sangkips/restopos/internal/config"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticPermissions service.RolePermissions

func (p staticPermissions) RolePermissions(context.Context) service.RolePermissions {
	return service.RolePermissions(p)
}

type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: map[string]*entity.IdempotencyKey{}}
}

func (m *memoryIdempotency) GetByKey(_ context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.keys[key]
	if !ok || k.Endpoint != endpoint {
		return nil, nil
	}
	return k, nil
}

func (m *memoryIdempotency) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[ikey.Key] = ikey
	return nil
}

func (m *memoryIdempotency) DeleteExpired(_ context.Context, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.keys {
		if v.IsExpired(now) {
			delete(m.keys, k)
		}
	}
	return nil
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", "test", time.Hour)
	profileID := uuid.New()
	token, _, err := jwt.Generate(profileID, "Caisse", service.RoleCashier)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.MustGet(ProfileIDKey).(uuid.UUID).String(),
			"role": c.GetString(ProfileRoleKey),
		})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			rec := serve(r, http.MethodGet, "/me", headers)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, rec.Body.String(), profileID.String())
				assert.Contains(t, rec.Body.String(), service.RoleCashier)
			}
		})
	}
}

func TestRequireArea(t *testing.T) {
	perms := staticPermissions{
		service.RoleAdmin:   {"*"},
		service.RoleKitchen: {service.PermKitchen},
	}

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set(ProfileRoleKey, role)
			}
			c.Next()
		})
		r.GET("/pos", RequireArea(perms, service.PermPOS), func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/kitchen", RequireArea(perms, service.PermKitchen), func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/prefs/:key", RequireAreaWhen(perms, service.PermSettings, func(c *gin.Context) bool {
			return c.Param("key") == "locked"
		}), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	admin := newRouter(service.RoleAdmin)
	assert.Equal(t, http.StatusOK, serve(admin, http.MethodGet, "/pos", nil).Code)
	assert.Equal(t, http.StatusOK, serve(admin, http.MethodGet, "/prefs/locked", nil).Code)

	kitchen := newRouter(service.RoleKitchen)
	assert.Equal(t, http.StatusForbidden, serve(kitchen, http.MethodGet, "/pos", nil).Code)
	assert.Equal(t, http.StatusOK, serve(kitchen, http.MethodGet, "/kitchen", nil).Code)
	assert.Equal(t, http.StatusOK, serve(kitchen, http.MethodGet, "/prefs/open", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(kitchen, http.MethodGet, "/prefs/locked", nil).Code)

	anonymous := newRouter("")
	assert.Equal(t, http.StatusForbidden, serve(anonymous, http.MethodGet, "/kitchen", nil).Code)

	unknown := newRouter("waiter")
	assert.Equal(t, http.StatusForbidden, serve(unknown, http.MethodGet, "/kitchen", nil).Code)
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(PerWindow(2, 60))
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", nil).Code)

	rec := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
}

func TestPerWindow(t *testing.T) {
	cfg := PerWindow(120, 60)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), PerWindow(0, 60))
}

func TestIdempotency(t *testing.T) {
	repo := newMemoryIdempotency()
	profileID := uuid.New()
	calls := 0
	status := http.StatusCreated

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ProfileIDKey, profileID)
		c.Next()
	})
	r.POST("/settle", Idempotency(IdempotencyConfig{Repo: repo, Log: zap.NewNop()}), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	})

	t.Run("requests without a key always run", func(t *testing.T) {
		serve(r, http.MethodPost, "/settle", nil)
		serve(r, http.MethodPost, "/settle", nil)
		assert.Equal(t, 2, calls)
	})

	t.Run("repeated key replays the first response", func(t *testing.T) {
		calls = 0
		headers := map[string]string{IdempotencyKeyHeader: "k1"}
		first := serve(r, http.MethodPost, "/settle", headers)
		second := serve(r, http.MethodPost, "/settle", headers)

		assert.Equal(t, 1, calls)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	})

	t.Run("failed responses are not stored", func(t *testing.T) {
		calls = 0
		status = http.StatusConflict
		headers := map[string]string{IdempotencyKeyHeader: "k2"}
		serve(r, http.MethodPost, "/settle", headers)

		status = http.StatusCreated
		rec := serve(r, http.MethodPost, "/settle", headers)
		assert.Equal(t, 2, calls)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Idempotency-Replayed"))
	})

	t.Run("expired keys run again", func(t *testing.T) {
		calls = 0
		key := profileID.String() + ":k3"
		require.NoError(t, repo.Create(context.Background(), &entity.IdempotencyKey{
			Key:          key,
			Endpoint:     "POST /settle",
			ResponseCode: http.StatusCreated,
			ResponseBody: `{"call":99}`,
			ExpiresAt:    time.Now().Add(-time.Minute),
		}))

		rec := serve(r, http.MethodPost, "/settle", map[string]string{IdempotencyKeyHeader: "k3"})
		assert.Equal(t, 1, calls)
		assert.JSONEq(t, `{"call":1}`, rec.Body.String())
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"http://register.local"}}))
	r.POST("/settle", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(r, http.MethodOptions, "/settle", map[string]string{
		"Origin":                         "http://register.local",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": IdempotencyKeyHeader,
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://register.local", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(r, http.MethodPost, "/settle", map[string]string{"Origin": "http://evil.local"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
