package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostelops/complaints/internal/handlers"
	"github.com/hostelops/complaints/internal/metrics"
	"github.com/hostelops/complaints/internal/middleware/auth"
	"github.com/hostelops/complaints/internal/models"
	"github.com/hostelops/complaints/internal/repo"
	"github.com/hostelops/complaints/internal/service"
	"github.com/hostelops/complaints/internal/testutil"
	"github.com/hostelops/complaints/internal/tokens"
	pkgdb "github.com/hostelops/complaints/pkg/db"
	"github.com/hostelops/complaints/pkg/hash"
	"github.com/hostelops/complaints/pkg/logging"
)

type countingRepo struct {
	*repo.GormRepo
	calls atomic.Int32
}

func (r *countingRepo) CreateComplaint(ctx context.Context, c *models.Complaint) (*models.Complaint, error) {
	r.calls.Add(1)
	return r.GormRepo.CreateComplaint(ctx, c)
}

func (r *countingRepo) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, error) {
	r.calls.Add(1)
	return r.GormRepo.ListComplaints(ctx, f)
}

func (r *countingRepo) UpdateComplaintStatus(ctx context.Context, id uuid.UUID, st models.Status, at time.Time) (*models.Complaint, error) {
	r.calls.Add(1)
	return r.GormRepo.UpdateComplaintStatus(ctx, id, st, at)
}

func (r *countingRepo) SearchComplaints(ctx context.Context, q string, owner *uuid.UUID, offset, limit int) ([]models.Complaint, error) {
	r.calls.Add(1)
	return r.GormRepo.SearchComplaints(ctx, q, owner, offset, limit)
}

type testServer struct {
	e     *echo.Echo
	repo  *countingRepo
	admin service.AdminAccount
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	gr := repo.New(db)
	cr := &countingRepo{GormRepo: gr}

	secret := []byte("router-test-secret-0123")
	tok, err := tokens.NewService(secret)
	require.NoError(t, err)

	admin := service.AdminAccount{Email: "warden@hostel.test", Password: "warden-pass", Name: "Warden"}
	m := metrics.New()
	ping := func(ctx context.Context) error { return pkgdb.Ping(ctx, db) }

	e := echo.New()
	e.Use(Common(logging.NewWithWriter(io.Discard, "error"), m)...)
	Register(e, &Deps{
		Gateway:          auth.NewGateway(tok),
		ComplaintHandler: handlers.NewComplaintHandler(&service.ComplaintService{Repo: cr, Metrics: m}),
		AuthHandler: handlers.NewAuthHandler(&service.AuthService{
			Repo:    gr,
			Tokens:  tok,
			Hasher:  hash.NewHasher(bcrypt.MinCost),
			Admin:   admin,
			Metrics: m,
		}),
		HealthHandler: &handlers.HealthHandler{
			Service: &service.HealthService{Secret: secret, Admin: admin, Ping: ping},
			Ping:    ping,
		},
		Metrics: m,
	})
	return &testServer{e: e, repo: cr, admin: admin}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get(echo.HeaderContentType) != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func (s *testServer) register(t *testing.T, name string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": name + "@hostel.test", "password": "pw-" + name, "role": "student",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["token"].(string)
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/auth/seed", "", nil)
	require.Contains(t, []int{http.StatusCreated, http.StatusOK}, rec.Code)

	rec, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": s.admin.Email, "password": s.admin.Password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return body["token"].(string)
}

func TestComplaints_MissingCredentialNeverReachesStore(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/complaints"},
		{http.MethodGet, "/api/complaints"},
		{http.MethodGet, "/api/complaints/search?q=leak"},
		{http.MethodPut, "/api/complaints/" + uuid.NewString()},
		{http.MethodPatch, "/api/complaints/" + uuid.NewString()},
	} {
		rec, body := s.do(t, tc.method, tc.path, "", map[string]string{"status": "Resolved"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "unauthorized", body["message"])
	}

	rec, _ := s.do(t, http.MethodGet, "/api/complaints", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Zero(t, s.repo.calls.Load())
}

func TestComplaints_Lifecycle(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	admin := s.adminToken(t)

	rec, body := s.do(t, http.MethodPost, "/api/complaints", alice, map[string]string{
		"category": "Plumbing", "description": "Leaky faucet", "priority": "Medium", "status": "Resolved",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Complaint submitted successfully", body["message"])
	created := body["complaint"].(map[string]any)
	assert.Equal(t, "Pending", created["status"])
	id := created["id"].(string)

	rec, body = s.do(t, http.MethodGet, "/api/complaints", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["complaints"])

	rec, _ = s.do(t, http.MethodPost, "/api/complaints", admin, map[string]string{
		"category": "Plumbing", "description": "x", "priority": "Low",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/complaints", alice, map[string]string{"category": "Plumbing"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	callsBefore := s.repo.calls.Load()
	rec, body = s.do(t, http.MethodPut, "/api/complaints/"+id, alice, map[string]string{"status": "Resolved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin access required", body["message"])

	rec, _ = s.do(t, http.MethodPut, "/api/complaints/"+id, admin, map[string]string{"status": "Closed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, callsBefore, s.repo.calls.Load())

	rec, _ = s.do(t, http.MethodPut, "/api/complaints/"+uuid.NewString(), admin, map[string]string{"status": "Resolved"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = s.do(t, http.MethodPatch, "/api/complaints/"+id, admin, map[string]string{"status": "Resolved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Complaint updated successfully", body["message"])
	assert.Equal(t, "Resolved", body["complaint"].(map[string]any)["status"])

	rec, body = s.do(t, http.MethodGet, "/api/complaints", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := body["complaints"].([]any)
	require.Len(t, list, 1)
	mine := list[0].(map[string]any)
	assert.Equal(t, "Resolved", mine["status"])
	assert.Equal(t, map[string]any{"name": "alice", "email": "alice@hostel.test"}, mine["users"])
	assert.NotContains(t, rec.Body.String(), "password")

	rec, body = s.do(t, http.MethodGet, "/api/complaints?status=Resolved&category=Plumbing", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["complaints"], 1)

	rec, body = s.do(t, http.MethodGet, "/api/complaints/search?q=faucet&page=1&size=5", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["complaints"], 1)

	rec, body = s.do(t, http.MethodGet, "/api/complaints/search?q=faucet", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["complaints"])
}

func TestAuthRoutes(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.register(t, "carol")

	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "carol", "email": "carol@hostel.test", "password": "x", "role": "student",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, body["message"])

	rec, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "carol@hostel.test", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "carol@hostel.test"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodPost, "/api/auth/seed", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])

	rec, body = s.do(t, http.MethodPost, "/api/auth/seed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Admin account already exists", body["message"])
	assert.Equal(t, "warden@hostel.test", body["email"])
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hostelops_http_requests_total")
}
