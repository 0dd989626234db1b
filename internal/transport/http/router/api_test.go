package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-user-account-api/internal/core/auth"
	"go-user-account-api/internal/core/session"
	"go-user-account-api/internal/domain"
	"go-user-account-api/internal/service"
	"go-user-account-api/internal/transport/http/handler"
	"go-user-account-api/pkg/utils"
)

func init() { gin.SetMode(gin.TestMode) }

// fakeRepo is an in-memory UserRepository so the whole HTTP stack runs
// without a database.
type fakeRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newFakeRepo() *fakeRepo { return &fakeRepo{users: map[int64]*domain.User{}} }

func (r *fakeRepo) Create(u *domain.User) error {
	r.seq++
	u.ID = r.seq
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Save(u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.all() {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindActiveByID(id int64) (*domain.User, error) {
	u, _ := r.FindByID(id)
	if u == nil || u.Deleted() {
		return nil, nil
	}
	return u, nil
}

func (r *fakeRepo) FindAllActive() ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.all() {
		if !u.Deleted() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByActive(active bool) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.all() {
		if u.Active == active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByRole(role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.all() {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) SearchByName(name string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.all() {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := r.FindByEmail(email)
	return u != nil, nil
}

func (r *fakeRepo) Paginate(page, size int, _, _ string) ([]domain.User, int64, error) {
	all := r.all()
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeRepo) CountActive() (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Active && !u.Deleted() {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) CountAll() (int64, error) { return int64(len(r.users)), nil }

func (r *fakeRepo) DeleteByID(id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) all() []domain.User {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type testEnv struct {
	engine *gin.Engine
	users  *service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newFakeRepo()
	hasher := utils.BcryptHasher{Cost: bcrypt.MinCost}
	log := zap.NewNop()

	userSvc := service.NewUserService(repo, hasher)
	authSvc := service.NewAuthService(repo, hasher, log)

	store := session.NewMemory(time.Minute)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Minute}

	cookie := handler.CookieOpts{Name: "session_id", MaxAge: 60}
	env := &testEnv{
		engine: NewEngine(Deps{
			Log:        log,
			AuthH:      handler.NewAuthHandler(authSvc, store, jwter, cookie, log),
			UserH:      handler.NewUserHandler(userSvc),
			Store:      store,
			JWTer:      jwter,
			CookieName: "session_id",
		}),
		users: userSvc,
	}

	env.seed(t, "Admin Root", "admin@example.com", "admin123", "ADMIN")
	env.seed(t, "Plain User", "plain@example.com", "plain123", "USER")
	return env
}

func (e *testEnv) seed(t *testing.T, name, email, password, role string) {
	t.Helper()
	_, err := e.users.Create(&domain.UserRequest{
		Name: &name, Email: &email, Password: &password, Role: &role,
	})
	require.NoError(t, err)
}

func (e *testEnv) do(method, path string, body any, cookies []*http.Cookie, bearer string) (*httptest.ResponseRecorder, map[string]any) {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (e *testEnv) login(t *testing.T, email, password string) ([]*http.Cookie, string) {
	t.Helper()
	w, env := e.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, nil, "")
	require.Equal(t, http.StatusOK, w.Code, "login should succeed: %s", w.Body.String())
	data := env["data"].(map[string]any)
	token, _ := data["token"].(string)
	return w.Result().Cookies(), token
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	w, _ := e.do(http.MethodGet, "/health", nil, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsExposeServiceNamespace(t *testing.T) {
	e := newTestEnv(t)
	e.do(http.MethodGet, "/health", nil, nil, "")

	w, _ := e.do(http.MethodGet, "/metrics", nil, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_api_http_requests_total")
	assert.Contains(t, w.Body.String(), "user_api_http_request_duration_seconds")
}

func TestUnauthenticatedListIsRejected(t *testing.T) {
	e := newTestEnv(t)
	w, env := e.do(http.MethodGet, "/api/users", nil, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", env["status"])
	assert.Equal(t, "Authentication required. Please login.", env["message"])
}

func TestLoginAndListWithCookie(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodGet, "/api/users", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env["status"])
	assert.EqualValues(t, 2, env["count"])
}

func TestBearerTokenFallback(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.login(t, "admin@example.com", "admin123")
	require.NotEmpty(t, token)

	w, env := e.do(http.MethodGet, "/api/users", nil, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env["status"])
}

func TestLoginFailureStatuses(t *testing.T) {
	e := newTestEnv(t)

	w, env := e.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "admin@example.com", "password": "wrong!!"}, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env["message"])

	// missing input is a 400, not a 401
	w, env = e.do(http.MethodPost, "/api/auth/login",
		map[string]string{"password": "whatever"}, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required", env["message"])
}

func TestCreateRequiresAdmin(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "plain@example.com", "plain123")

	w, env := e.do(http.MethodPost, "/api/users", map[string]string{
		"name": "New Person", "email": "new@example.com", "password": "secret1", "role": "USER",
	}, cookies, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. Admin role required.", env["message"])
}

func TestCreateUserFlow(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodPost, "/api/users", map[string]string{
		"name": "New Person", "email": "new@example.com", "password": "secret1", "role": "USER",
	}, cookies, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User created successfully", env["message"])
	data := env["data"].(map[string]any)
	assert.Equal(t, "New Person", data["name"])

	// duplicate email
	w, env = e.do(http.MethodPost, "/api/users", map[string]string{
		"name": "Other Person", "email": "new@example.com", "password": "secret1", "role": "USER",
	}, cookies, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists: new@example.com", env["message"])

	// empty body
	w, env = e.do(http.MethodPost, "/api/users", nil, cookies, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Request body cannot be null", env["message"])
}

func TestGetByIDValidation(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodGet, "/api/users/abc", nil, cookies, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID must be a positive number", env["message"])

	w, env = e.do(http.MethodGet, "/api/users/999", nil, cookies, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found with id: 999", env["message"])
}

func TestSoftDeleteFlow(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, _ := e.do(http.MethodDelete, "/api/users/2/soft", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(http.MethodGet, "/api/users/2", nil, cookies, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// second soft delete also 404s: the record left the active set
	w, env := e.do(http.MethodDelete, "/api/users/2/soft", nil, cookies, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found with id: 2", env["message"])
}

func TestHardDeleteFlow(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, _ := e.do(http.MethodDelete, "/api/users/2/hard", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(http.MethodGet, "/api/users/email/plain@example.com", nil, cookies, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidRoleLookup(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodGet, "/api/users/role/WIZARD", nil, cookies, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role: WIZARD. Valid roles are: ADMIN, USER, MANAGER, GUEST", env["message"])
}

func TestPaginatedEndpoint(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodGet, "/api/users/paginated?page=0&size=1", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, env["currentPage"])
	assert.EqualValues(t, 2, env["totalPages"])
	assert.EqualValues(t, 2, env["totalElements"])
	assert.Len(t, env["data"], 1)
}

func TestSessionProbe(t *testing.T) {
	e := newTestEnv(t)

	_, env := e.do(http.MethodGet, "/api/auth/session", nil, nil, "")
	data := env["data"].(map[string]any)
	assert.Equal(t, false, data["authenticated"])
	assert.Nil(t, data["userId"])

	cookies, _ := e.login(t, "admin@example.com", "admin123")
	_, env = e.do(http.MethodGet, "/api/auth/session", nil, cookies, "")
	data = env["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "admin@example.com", data["userEmail"])
	assert.Equal(t, "ADMIN", data["userRole"])
	assert.Equal(t, "Admin Root", data["userNom"])
	assert.NotEmpty(t, data["sessionId"])
}

func TestMeAndLogout(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodGet, "/api/auth/me", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := env["data"].(map[string]any)
	assert.Equal(t, "Admin Root", data["name"])

	w, env = e.do(http.MethodPost, "/api/auth/logout", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", env["message"])

	// the server-side session is gone now
	w, env = e.do(http.MethodGet, "/api/auth/me", nil, cookies, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated. Please login.", env["message"])
}

func TestUpdateRequiresAdminButReadDoesNot(t *testing.T) {
	e := newTestEnv(t)
	plainCookies, _ := e.login(t, "plain@example.com", "plain123")

	w, _ := e.do(http.MethodGet, "/api/users/1", nil, plainCookies, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(http.MethodPut, "/api/users/1", map[string]string{"name": "Nope Nope"}, plainCookies, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestToggleStatusEndpoint(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodPatch, "/api/users/2/status", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := env["data"].(map[string]any)
	assert.Equal(t, false, data["active"])
}

func TestSearchAndCount(t *testing.T) {
	e := newTestEnv(t)
	cookies, _ := e.login(t, "admin@example.com", "admin123")

	w, env := e.do(http.MethodGet, "/api/users/search?name=plain", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env["count"])

	w, env = e.do(http.MethodGet, "/api/users/count", nil, cookies, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := env["data"].(map[string]any)
	assert.EqualValues(t, 2, data["activeUsers"])
	assert.EqualValues(t, 2, data["totalUsers"])
}
