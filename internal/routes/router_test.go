package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	domainAccount "jobboard/internal/domain/account"
	"jobboard/internal/domain/mail"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/database/memory"
	"jobboard/internal/infrastructure/events"
	"jobboard/internal/usecase/account"
	"jobboard/internal/usecase/application"
	"jobboard/internal/usecase/job"
	"jobboard/internal/usecase/newsletter"
	"jobboard/internal/usecase/passwordreset"
	"jobboard/internal/usecase/profile"
	"jobboard/internal/usecase/resume"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (o *outbox) Dispatch(msg mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.messages)
}

func (o *outbox) lastToken(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.messages)
	body := o.messages[len(o.messages)-1].TextBody
	idx := strings.Index(body, "?token=")
	require.GreaterOrEqual(t, idx, 0)
	return strings.Fields(body[idx+len("?token="):])[0]
}

type testServer struct {
	router   *gin.Engine
	accounts *memory.AccountRepository
	outbox   *outbox
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
		PasswordReset: config.PasswordResetConfig{
			TokenTTL:  time.Hour,
			MinLength: 6,
			ResetURL:  "http://localhost:3000/reset-password",
		},
		RateLimit: config.RateLimitConfig{
			GeneralRPS:   1000,
			GeneralBurst: 1000,
			AuthRPS:      1000,
			AuthBurst:    1000,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	accounts := memory.NewAccountRepository()
	refreshTokens := memory.NewRefreshTokenRepository()
	jobs := memory.NewJobRepository()
	sharedCache := cache.NewMemoryCache()
	box := &outbox{}
	publisher := events.NopPublisher{}

	deps := &Dependencies{
		Accounts:       account.NewService(accounts, refreshTokens, &cfg.JWT),
		PasswordResets: passwordreset.NewService(accounts, refreshTokens, sharedCache, box, &cfg.PasswordReset),
		Jobs:           job.NewService(jobs, sharedCache, publisher),
		Applications:   application.NewService(jobs, memory.NewApplicationRepository(), publisher),
		Profiles: profile.NewService(accounts,
			memory.NewExperienceRepository(),
			memory.NewEducationRepository(),
			memory.NewSkillRepository(),
		),
		Newsletter:   newsletter.NewService(memory.NewNewsletterRepository()),
		Resumes:      resume.NewService(nil, jobs),
		HealthChecks: map[string]handler.Pinger{"cache": sharedCache},
	}

	return &testServer{
		router:   SetupRoutes(cfg, deps),
		accounts: accounts,
		outbox:   box,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *testServer) register(t *testing.T, email, password string) account.AuthResponse {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/register", gin.H{
		"first_name":       "Test",
		"last_name":        "User",
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"agreed_to_terms":  true,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp account.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func (s *testServer) login(t *testing.T, email, password string) account.AuthResponse {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp account.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	auth := s.register(t, "admin@example.com", "adminpass1")

	acct, err := s.accounts.GetByID(context.Background(), auth.Account.ID)
	require.NoError(t, err)
	acct.Role = domainAccount.RoleAdmin
	require.NoError(t, s.accounts.Update(context.Background(), acct))

	return s.login(t, "admin@example.com", "adminpass1").AccessToken
}

func (s *testServer) createJob(t *testing.T, token string, overrides gin.H) job.JobResponse {
	t.Helper()
	body := gin.H{
		"title":            "Backend Engineer",
		"company":          "Acme",
		"location":         "Berlin",
		"category":         "it",
		"job_type":         "full-time",
		"experience_level": "mid",
		"work_mode":        "remote",
		"min_salary":       50000,
		"max_salary":       70000,
		"description":      "Build APIs",
	}
	for k, v := range overrides {
		body[k] = v
	}

	rec, env := s.do(t, http.MethodPost, "/api/v1/admin/jobs", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp job.JobResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestForgotPassword_ResponseDoesNotRevealAccount(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "known@example.com", "password1")

	known, _ := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "known@example.com"}, "")
	unknown, _ := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "nobody@example.com"}, "")

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Code, unknown.Code)
	assert.Equal(t, known.Body.Bytes(), unknown.Body.Bytes())
	assert.Equal(t, 1, s.outbox.count())
}

func TestForgotPassword_EmptyEmail(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "  "}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
}

func TestResetPassword_SingleUse(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "reset@example.com", "password1")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "Reset@Example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := s.outbox.lastToken(t)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/reset-password/verify?token="+token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/reset-password", gin.H{"token": token, "password": "newpass"}, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/reset-password", gin.H{"token": token, "password": "another"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", env.Code)

	s.login(t, "reset@example.com", "newpass")

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "reset@example.com", "password": "password1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResetPassword_WeakPasswordKeepsToken(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "weak@example.com", "password1")

	s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "weak@example.com"}, "")
	token := s.outbox.lastToken(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/reset-password", gin.H{"token": token, "password": "abc"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WEAK_PASSWORD", env.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/reset-password", gin.H{"token": token, "password": "longenough"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "me@example.com", "password1")

	rec, _ := s.do(t, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, auth.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, auth.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	user := s.register(t, "user@example.com", "password1")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/admin/jobs", gin.H{"title": "x"}, user.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJobSearch_InvalidSalaryParameter(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/jobs?min_salary=abc", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUERY_PARAMETER", env.Code)

	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Equal(t, "min_salary", details["field"])
	assert.Equal(t, "abc", details["value"])
}

func TestJobSearch_UnknownOrderingFallsBack(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	s.createJob(t, admin, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/jobs?ordering=description", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp job.SearchResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.EqualValues(t, 1, resp.Total)
}

func TestJobSearch_ExcludesDeletedJobs(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	kept := s.createJob(t, admin, nil)
	removed := s.createJob(t, admin, gin.H{"title": "Frontend Engineer"})

	rec, _ := s.do(t, http.MethodDelete, "/api/v1/admin/jobs/"+removed.ID.String(), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/jobs", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp job.SearchResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, kept.ID, resp.Jobs[0].ID)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/jobs/"+removed.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/jobs/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobStatsAndCategories(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	s.createJob(t, admin, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/jobs/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]int64
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 1, stats["total_jobs"])

	s.createJob(t, admin, gin.H{"company": "Globex"})
	_, env = s.do(t, http.MethodGet, "/api/v1/jobs/stats", nil, "")
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 2, stats["total_jobs"])
	assert.EqualValues(t, 2, stats["companies"])

	rec, _ = s.do(t, http.MethodGet, "/api/v1/jobs/categories", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApply(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	active := s.createJob(t, admin, nil)
	inactive := s.createJob(t, admin, gin.H{"title": "Closed role"})
	rec, _ := s.do(t, http.MethodDelete, "/api/v1/admin/jobs/"+inactive.ID.String(), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	body := gin.H{"full_name": "Guest Applicant", "email": "guest@example.com"}

	rec, env := s.do(t, http.MethodPost, "/api/v1/jobs/"+active.ID.String()+"/apply", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp application.ApplyResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "Backend Engineer", resp.JobTitle)
	assert.Equal(t, "Acme", resp.Company)

	rec, env = s.do(t, http.MethodPost, "/api/v1/jobs/"+active.ID.String()+"/apply", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE_APPLICATION", env.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/jobs/"+inactive.ID.String()+"/apply", body, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplications_OwnOnly(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	posted := s.createJob(t, admin, nil)
	alice := s.register(t, "alice@example.com", "password1")
	bob := s.register(t, "bob@example.com", "password1")

	rec, env := s.do(t, http.MethodPost, "/api/v1/jobs/"+posted.ID.String()+"/apply",
		gin.H{"full_name": "Alice", "email": "alice@example.com"}, alice.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	var applied application.ApplyResponse
	require.NoError(t, json.Unmarshal(env.Data, &applied))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/applications/"+applied.ApplicationID.String(), nil, alice.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/applications/"+applied.ApplicationID.String(), nil, bob.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewsletter(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/newsletter/subscribe", gin.H{"email": "reader@example.com"}, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Subscribed successfully", env.Message)

	rec, env = s.do(t, http.MethodPost, "/api/v1/newsletter/subscribe", gin.H{"email": "reader@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ALREADY_SUBSCRIBED", env.Code)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "profile@example.com", "password1")

	rec, _ := s.do(t, http.MethodPatch, "/api/v1/profile", gin.H{"first_name": "Renamed"}, auth.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPost, "/api/v1/profile/skills", gin.H{"name": "go"}, auth.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := s.do(t, http.MethodPost, "/api/v1/profile/skills", gin.H{"name": "Go"}, auth.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "DUPLICATE_SKILL", env.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/profile", nil, auth.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp profile.ProfileResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "Renamed", resp.Account.FirstName)
	assert.Len(t, resp.Skills, 1)
}

func TestResumeScore_Unavailable(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/ai/resume-score", gin.H{"resume_text": "Go developer with five years of experience"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "AI_UNAVAILABLE", env.Code)
}
