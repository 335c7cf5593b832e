package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethraa/internal/apperr"
	"ethraa/internal/config"
	"ethraa/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator map[string]models.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (models.User, error) {
	user, ok := s[token]
	if !ok {
		return models.User{}, apperr.New(apperr.KindUnauthorized, apperr.KeyUnauthenticated)
	}
	return user, nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/probe", append(handlers, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})...)
	return r
}

func TestAuth(t *testing.T) {
	auth := stubAuthenticator{"good": {ID: "u1", Role: models.UserRoleUser}}
	r := newRouter(Auth(auth))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			body := decode(t, rec)
			if tc.status == http.StatusOK {
				assert.Equal(t, "u1", body["id"])
				return
			}
			assert.Equal(t, "fail", body["status"])
			assert.Equal(t, apperr.KeyUnauthenticated, body["errors"])
			assert.Equal(t, "/probe", body["path"])
			assert.EqualValues(t, http.StatusUnauthorized, body["statusCode"])
		})
	}
}

func TestRequireRoles(t *testing.T) {
	auth := stubAuthenticator{
		"user":  {ID: "u1", Role: models.UserRoleUser},
		"admin": {ID: "a1", Role: models.UserRoleAdmin},
	}
	r := newRouter(Auth(auth), RequireRoles(models.UserRoleAdmin))

	for token, status := range map[string]int{"user": http.StatusForbidden, "admin": http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code, token)
	}

	rec := httptest.NewRecorder()
	newRouter(RequireRoles(models.UserRoleAdmin)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeCounter struct {
	hits map[string]int64
	err  error
}

func (f *fakeCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.hits[key]++
	return f.hits[key], window, nil
}

func TestRateLimit(t *testing.T) {
	counter := &fakeCounter{hits: map[string]int64{}}
	rule := config.RateLimitRule{Requests: 2, Window: time.Minute}
	r := newRouter(RateLimit(counter, zerolog.Nop(), "login", rule))

	var codes []int
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			assert.Equal(t, apperr.KeyRateLimit, decode(t, rec)["errors"])
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	counter.err = errors.New("redis down")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryRendersStoreError(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, apperr.KeyWrong, body["errors"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://ethraa.app/"}))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/probe", nil)
	req.Header.Set("Origin", "https://ethraa.app")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://ethraa.app", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
