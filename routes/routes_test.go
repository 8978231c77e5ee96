package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"givebridge/auth"
	"givebridge/cache"
	"givebridge/handlers"
	"givebridge/models"
	"givebridge/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memItems struct {
	repository.ItemRepository
	items map[primitive.ObjectID]*models.DonationItem
}

func (m *memItems) ListItemsByStatus(_ context.Context, status string) ([]*models.DonationItem, error) {
	var out []*models.DonationItem
	for _, it := range m.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memItems) GetItemByID(_ context.Context, id primitive.ObjectID) (*models.DonationItem, error) {
	return m.items[id], nil
}

func (m *memItems) SaveItem(_ context.Context, item *models.DonationItem) error {
	m.items[item.ID] = item
	return nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T, uploadDir string) (http.Handler, *auth.TokenIssuer, *memItems) {
	t.Helper()
	return newTestRouterWith(t, Options{UploadDir: uploadDir})
}

func newTestRouterWith(t *testing.T, opts Options) (http.Handler, *auth.TokenIssuer, *memItems) {
	t.Helper()
	tokens := auth.NewTokenIssuer("test-secret", "givebridge", time.Hour)
	items := &memItems{items: map[primitive.ObjectID]*models.DonationItem{}}

	opts.Logger = zerolog.Nop()
	opts.Tokens = tokens
	opts.AllowedOrigin = "https://app.example.com"

	router := SetupRoutes(Handlers{
		User:    &handlers.UserHandler{Validator: handlers.NewValidator()},
		Item:    &handlers.ItemHandler{Repo: items, Validator: handlers.NewValidator()},
		Receipt: &handlers.ReceiptHandler{Repo: repository.NewReceiptRepository(items, nil)},
		Health:  &handlers.HealthHandler{DB: okPinger{}},
	}, opts)
	return router, tokens, items
}

func bearer(t *testing.T, tokens *auth.TokenIssuer, email, userType string) string {
	t.Helper()
	token, err := tokens.Issue(primitive.NewObjectID().Hex(), email, userType)
	require.NoError(t, err)
	return "Bearer " + token
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestHealthRoute(t *testing.T) {
	router, _, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	router, _, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Could not find this route.", message(t, rec))
}

func TestPreflight(t *testing.T) {
	router, _, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/users/accept", nil)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestActiveIsPublic(t *testing.T) {
	router, _, items := newTestRouter(t, "")
	id := primitive.NewObjectID()
	items.items[id] = &models.DonationItem{ID: id, Title: "Coats", Status: models.ItemStatusActive}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/active", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id.Hex())
}

func TestAcceptRequiresToken(t *testing.T) {
	router, _, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/accept", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication failed!", message(t, rec))
}

func TestAcceptRejectsHomeOwner(t *testing.T) {
	router, tokens, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/users/accept", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearer(t, tokens, "home@example.com", "homeowner"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAcceptByVolunteer(t *testing.T) {
	router, tokens, items := newTestRouter(t, "")
	id := primitive.NewObjectID()
	items.items[id] = &models.DonationItem{ID: id, Title: "Coats", Status: models.ItemStatusActive}

	req := httptest.NewRequest(http.MethodPost, "/api/users/accept", bytes.NewBufferString(`{"itemId":"`+id.Hex()+`"}`))
	req.Header.Set("Authorization", bearer(t, tokens, "vic@example.com", "volunteer"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, models.ItemStatusPending, items.items[id].Status)
	assert.Equal(t, "vic@example.com", items.items[id].Volunteer)
}

func TestCreateItemRequiresHomeOwner(t *testing.T) {
	router, tokens, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{"title":"Coats","quantity":1}`))
	req.Header.Set("Authorization", bearer(t, tokens, "vic@example.com", "volunteer"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You are not allowed to do this.", message(t, rec))
}

func TestUploadedImagesServed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.png"), []byte("png-bytes"), 0o644))
	router, _, _ := newTestRouter(t, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/images/abc.png", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestUploadedImagesDisabledWithoutDir(t *testing.T) {
	router, _, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/images/abc.png", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// bucketLimiter allows burst requests per address and counts what it saw.
type bucketLimiter struct {
	mu    sync.Mutex
	burst int
	hits  map[string]int
}

func (b *bucketLimiter) Allow(_ context.Context, _, ip string, _, _ int) (*cache.RateLimitResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[ip]++
	if b.hits[ip] > b.burst {
		return &cache.RateLimitResult{Allowed: false, RetryAfter: time.Second}, nil
	}
	return &cache.RateLimitResult{Allowed: true, Remaining: int64(b.burst - b.hits[ip])}, nil
}

func loginWithForwardedFor(router http.Handler, forwarded string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{`))
	req.RemoteAddr = "203.0.113.7:40000"
	req.Header.Set("X-Forwarded-For", forwarded)
	req.Header.Set("X-Real-IP", forwarded)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	limiter := &bucketLimiter{burst: 1, hits: map[string]int{}}
	router, _, _ := newTestRouterWith(t, Options{Limiter: limiter, RateLimitRPS: 1, RateLimitBurst: 1})

	var codes []int
	for i := 1; i <= 5; i++ {
		codes = append(codes, loginWithForwardedFor(router, "10.0.0."+string(rune('0'+i))).Code)
	}

	assert.Equal(t, []int{
		http.StatusUnprocessableEntity,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
	assert.Equal(t, map[string]int{"203.0.113.7": 5}, limiter.hits)
}

func TestLoginRateLimit_TrustedProxy(t *testing.T) {
	limiter := &bucketLimiter{burst: 1, hits: map[string]int{}}
	router, _, _ := newTestRouterWith(t, Options{Limiter: limiter, RateLimitRPS: 1, RateLimitBurst: 1, TrustProxy: true})

	rec := loginWithForwardedFor(router, "10.0.0.1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	loginWithForwardedFor(router, "10.0.0.2")
	assert.Equal(t, map[string]int{"10.0.0.1": 1, "10.0.0.2": 1}, limiter.hits)
}
