package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/delivery/http/handler"
	"github.com/portoo/portoo-backend/internal/delivery/http/middleware"
	"github.com/portoo/portoo-backend/internal/delivery/http/web"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/infrastructure/storage"
	"github.com/portoo/portoo-backend/internal/repository"
	"github.com/portoo/portoo-backend/internal/repository/memory"
	"github.com/portoo/portoo-backend/internal/usecase/auth"
	"github.com/portoo/portoo-backend/internal/usecase/bio"
	"github.com/portoo/portoo-backend/internal/usecase/contact"
	"github.com/portoo/portoo-backend/internal/usecase/explore"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
	"github.com/portoo/portoo-backend/internal/usecase/upload"
	"github.com/portoo/portoo-backend/internal/usecase/username"
	"github.com/portoo/portoo-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	ownerEmail = "alex@example.com"
)

type testApp struct {
	engine   *gin.Engine
	verifier *auth.TokenVerifier
	store    *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	store := memory.NewStore()
	repos := store.Repositories()
	v := validation.New()
	objects := storage.NewMemoryStore("http://portoo.test/files")
	verifier := auth.NewTokenVerifier(testSecret)
	pages, err := web.Templates()
	require.NoError(t, err)

	portfolioUC := portfolio.NewPortfolioUseCase(repos, store, repository.Capabilities{Experiences: true}, nil, v, "http://portoo.test", log)

	router := NewRouter(Handlers{
		Username:  handler.NewUsernameHandler(username.NewUsernameUseCase(repos.Portfolios, nil, log)),
		Portfolio: handler.NewPortfolioHandler(portfolioUC),
		Upload:    handler.NewUploadHandler(upload.NewUploadUseCase(objects, 1<<20, log)),
		Contact:   handler.NewContactHandler(contact.NewContactUseCase(repos.Portfolios, repos.Contacts, v, log)),
		Explore:   handler.NewExploreHandler(explore.NewExploreUseCase(repos.Portfolios, repos.Projects, nil, log)),
		Bio:       handler.NewBioHandler(bio.NewBioUseCase(nil, v, log)),
		Page:      handler.NewPageHandler(portfolioUC, pages, log),
		Files:     handler.NewFileHandler(objects),
	}, middleware.NewAuthMiddleware(verifier, log), []string{"*"}, log)

	return &testApp{engine: router.Setup(), verifier: verifier, store: store}
}

func (a *testApp) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := a.verifier.Issue(email, "user-1", time.Hour)
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createBody() map[string]interface{} {
	return map[string]interface{}{
		"username":            "alex",
		"full_name":           "Alex Kim",
		"job_title":           "Engineer",
		"bio":                 "I build things.",
		"email":               ownerEmail,
		"availability_status": "open_fulltime",
		"template":            "minimal",
		"skills":              []map[string]string{{"name": "Go", "category": "Languages"}},
		"projects":            []map[string]interface{}{{"name": "Portoo", "tech_stack": []string{"Go"}}},
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = app.do(t, http.MethodHead, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPortfolioLifecycle(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/check-username?username=alex", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["available"])

	w = app.do(t, http.MethodPost, "/api/portfolio", createBody(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, true, created["success"])
	assert.Equal(t, "alex", created["username"])
	assert.Equal(t, "http://portoo.test/alex", created["portfolio_url"])

	w = app.do(t, http.MethodGet, "/api/check-username?username=alex", nil, "")
	check := decode(t, w)
	assert.Equal(t, false, check["available"])
	assert.Equal(t, "Username is already taken", check["error"])

	w = app.do(t, http.MethodPost, "/api/portfolio", createBody(), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = app.do(t, http.MethodGet, "/api/portfolio/alex", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	agg := decode(t, w)
	assert.Equal(t, "Alex Kim", agg["full_name"])
	require.Len(t, agg["projects"], 1)

	w = app.do(t, http.MethodGet, "/api/portfolio/ghost", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Portfolio not found", decode(t, w)["error"])

	w = app.do(t, http.MethodPost, "/api/views", map[string]string{"username": "alex"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = app.do(t, http.MethodPost, "/api/views", map[string]string{"username": "ghost"}, "")
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestCreateValidationDetails(t *testing.T) {
	app := newTestApp(t)
	body := createBody()
	body["email"] = "not-an-email"

	w := app.do(t, http.MethodPost, "/api/portfolio", body, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	out := decode(t, w)
	assert.Equal(t, "Validation error", out["error"])
	assert.NotEmpty(t, out["details"])

	w = app.do(t, http.MethodPost, "/api/portfolio", "not an object", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRequiresOwner(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/portfolio", createBody(), "").Code)
	patch := map[string]string{"full_name": "Alex K."}

	w := app.do(t, http.MethodPatch, "/api/portfolio/alex", patch, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPatch, "/api/portfolio/alex", patch, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPatch, "/api/portfolio/alex", patch, app.token(t, "mallory@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can only edit your own portfolio", decode(t, w)["error"])

	w = app.do(t, http.MethodPatch, "/api/portfolio/alex", patch, app.token(t, "ALEX@example.com"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Alex K.", out["portfolio"].(map[string]interface{})["full_name"])

	w = app.do(t, http.MethodGet, "/api/my-portfolios", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/my-portfolios", nil, app.token(t, ownerEmail))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["portfolios"], 1)
}

func TestContactAndExplore(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/portfolio", createBody(), "").Code)

	w := app.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Sam", "email": "sam@example.com", "message": "Hi", "portfolio_username": "alex",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, app.store.Contacts(), 1)

	w = app.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Sam", "email": "sam@example.com", "message": "Hi", "portfolio_username": "ghost",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Sam", "email": "not-an-email", "message": "Hi", "portfolio_username": "alex",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation error", body["error"])
	assert.Equal(t, []interface{}{map[string]interface{}{"field": "email", "message": "Invalid email address"}}, body["details"])

	w = app.do(t, http.MethodGet, "/api/explore?skill=go&sort=alphabetical", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.Equal(t, float64(1), page["total"])
	assert.Equal(t, []interface{}{"Go"}, page["skills"])

	w = app.do(t, http.MethodGet, "/api/explore/projects?q=portoo", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = app.do(t, http.MethodGet, "/api/explore?page=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadAndServeFile(t *testing.T) {
	app := newTestApp(t)

	post := func(fields map[string]string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		if content != nil {
			fw, err := mw.CreateFormFile("file", "resume.pdf")
			require.NoError(t, err)
			_, err = fw.Write(content)
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		return w
	}

	w := post(map[string]string{"bucket": "resumes", "path": "1700000000000-resume.pdf"}, []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "http://portoo.test/files/resumes/1700000000000-resume.pdf", out["url"])
	assert.Equal(t, "1700000000000-resume.pdf", out["path"])

	get := httptest.NewRecorder()
	app.engine.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/files/resumes/1700000000000-resume.pdf", nil))
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "%PDF-1.4", get.Body.String())

	w = post(map[string]string{"bucket": "secrets", "path": "a.pdf"}, []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(map[string]string{"bucket": "resumes", "path": "a.pdf"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File, bucket, and path are required", decode(t, w)["error"])

	w = post(map[string]string{"bucket": "resumes", "path": "big.pdf"}, bytes.Repeat([]byte("a"), 3<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBioDraftsWithoutGenerator(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodPost, "/api/bio/drafts", map[string]interface{}{
		"full_name": "Alex Kim", "job_title": "Engineer", "skills": []string{"Go"},
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Len(t, out["drafts"], bio.DraftCount)
	assert.Equal(t, false, out["generated"])

	w = app.do(t, http.MethodPost, "/api/bio/drafts", map[string]string{"job_title": "Engineer"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicPage(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/portfolio", createBody(), "").Code)

	w := app.do(t, http.MethodGet, "/alex", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "<h1>Alex Kim</h1>")

	w = app.do(t, http.MethodGet, "/ghost", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Portfolio not found")
}
