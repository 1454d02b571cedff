package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rohits-web03/codebox/internal/api/handlers"
	"github.com/rohits-web03/codebox/internal/api/middleware"
	"github.com/rohits-web03/codebox/internal/config"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/services"
	"github.com/rohits-web03/codebox/internal/utils"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fileView struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Size    int64  `json:"size"`
}

type RouterSuite struct {
	suite.Suite
	auth    *middleware.Authenticator
	handler http.Handler
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	log := zap.NewNop()
	cfg := config.Config{
		Environment:        "test",
		FrontendURL:        "http://localhost:5173",
		CorsConfig:         config.CorsConfig([]string{"http://localhost:5173"}),
		AdminUsernames:     []string{"root"},
		PresignTTL:         time.Minute,
		MaxFilesPerRequest: 5,
	}

	store := repositories.NewMemoryStore()
	resolver := services.NewResolver(store, services.NewResolveCache(32, time.Minute), log)
	minter := services.NewCodeMinter(store, utils.RandomCodes{}, 10)
	guard := services.NewAccessGuard(store, bcrypt.MinCost)
	s.auth = middleware.NewAuthenticator("test-secret", cfg.AdminUsernames)

	h := handlers.New(handlers.Deps{
		Config:     cfg,
		Shares:     services.NewShareService(store, minter, resolver, nil, cfg.MaxFilesPerRequest, log),
		Containers: services.NewContainerManager(store, guard, minter, resolver, nil, cfg.MaxFilesPerRequest, log),
		Resolver:   resolver,
		Users:      repositories.NewMemoryUserStore(),
		Auth:       s.auth,
		Logger:     log,
	})
	s.handler = SetupRouter(cfg, h, s.auth, log)
}

func (s *RouterSuite) do(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *RouterSuite) adminCookie() *http.Cookie {
	token, err := s.auth.IssueToken("admin-id", "root")
	s.Require().NoError(err)
	return &http.Cookie{Name: middleware.TokenCookie, Value: token}
}

func twoFiles() []map[string]any {
	return []map[string]any{
		{"name": "a.txt", "locator": "https://cdn.example.com/a.txt", "size": 3},
		{"name": "b.txt", "locator": "https://cdn.example.com/b.txt", "size": 4},
	}
}

func (s *RouterSuite) submit() string {
	w, env := s.do(http.MethodPost, "/api/v1/shares", map[string]any{
		"uploaderName": "alice",
		"files":        twoFiles(),
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		Code      string `json:"code"`
		TotalSize int64  `json:"totalSize"`
		Files     int    `json:"files"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal(int64(7), data.TotalSize)
	s.Equal(2, data.Files)
	return data.Code
}

func (s *RouterSuite) TestHealth() {
	w, _ := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *RouterSuite) TestShareLifecycle() {
	code := s.submit()
	s.True(utils.IsValidCode(code))

	w, env := s.do(http.MethodGet, "/api/v1/resolve/"+code, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var view struct {
		UploaderName string     `json:"uploaderName"`
		Masked       bool       `json:"masked"`
		Files        []fileView `json:"files"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &view))
	s.Equal("alice", view.UploaderName)
	s.False(view.Masked)
	s.Len(view.Files, 2)

	w, env = s.do(http.MethodGet, "/api/v1/resolve/"+code+"/files/1/download", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var dl struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &dl))
	s.Equal("https://cdn.example.com/b.txt", dl.URL)
	s.Equal("b.txt", dl.Filename)

	w, _ = s.do(http.MethodGet, "/api/v1/resolve/"+code+"/files/2/download", nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, "/api/v1/resolve/"+code+"/files/x/download", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/v1/shares/"+code, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/api/v1/resolve/"+code, nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/v1/shares/"+code, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestSubmitRejectsBadInput() {
	w, env := s.do(http.MethodPost, "/api/v1/shares", map[string]any{"uploaderName": "alice", "files": []any{}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.False(env.Success)

	w, _ = s.do(http.MethodPost, "/api/v1/shares", map[string]any{"uploaderName": "alice", "files": twoFiles(), "extra": 1})
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/shares", `{"uploaderName":"alice"`)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/shares", map[string]any{"uploaderName": "alice", "files": twoFiles(), "totalSize": 100})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestSubmitWithTakenCode() {
	body := map[string]any{"uploaderName": "alice", "code": "424242", "files": twoFiles()}
	w, _ := s.do(http.MethodPost, "/api/v1/shares", body)
	s.Require().Equal(http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/api/v1/shares", body)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterSuite) TestResolveUnknown() {
	w, env := s.do(http.MethodGet, "/api/v1/resolve/000000", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.False(env.Success)
	s.Empty(env.Data)

	w, _ = s.do(http.MethodGet, "/api/v1/resolve/not-a-code", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestContainerLifecycle() {
	w, _ := s.do(http.MethodPost, "/api/v1/containers", map[string]any{"name": "box", "secret": "pw"})
	s.Require().Equal(http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/api/v1/containers", map[string]any{"name": "box", "secret": "other"})
	s.Equal(http.StatusConflict, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/containers/box/open", map[string]any{"secret": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Empty(env.Data)
	w, _ = s.do(http.MethodPost, "/api/v1/containers/ghost/open", map[string]any{"secret": "pw"})
	s.Equal(http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodPost, "/api/v1/containers/box/files", map[string]any{"secret": "pw", "files": twoFiles()})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var box struct {
		Name       string     `json:"name"`
		SecretHash string     `json:"secretHash"`
		Files      []fileView `json:"files"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &box))
	s.Equal("box", box.Name)
	s.Empty(box.SecretHash)
	s.Require().Len(box.Files, 2)
	s.NotEqual(box.Files[0].Code, box.Files[1].Code)

	fileCode := box.Files[1].Code
	w, env = s.do(http.MethodGet, "/api/v1/resolve/"+fileCode, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var view struct {
		UploaderName string     `json:"uploaderName"`
		Masked       bool       `json:"masked"`
		Files        []fileView `json:"files"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &view))
	s.Equal(services.MaskedUploader, view.UploaderName)
	s.True(view.Masked)
	s.Require().Len(view.Files, 1)
	s.Equal("b.txt", view.Files[0].Name)
	s.NotContains(string(env.Data), "box")

	w, _ = s.do(http.MethodDelete, "/api/v1/containers/box/files/999999", map[string]any{"secret": "pw"})
	s.Equal(http.StatusNotFound, w.Code)
	w, env = s.do(http.MethodDelete, "/api/v1/containers/box/files/"+box.Files[0].Code, map[string]any{"secret": "pw"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &box))
	s.Len(box.Files, 1)

	w, _ = s.do(http.MethodDelete, "/api/v1/containers/box", map[string]any{"secret": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/v1/containers/box", map[string]any{"secret": "pw"})
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/resolve/"+fileCode, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestAdminListings() {
	s.submit()
	w, _ := s.do(http.MethodPost, "/api/v1/containers", map[string]any{"name": "box", "secret": "pw"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/shares", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	token, err := s.auth.IssueToken("user-id", "alice")
	s.Require().NoError(err)
	w, _ = s.do(http.MethodGet, "/api/v1/containers", nil, &http.Cookie{Name: middleware.TokenCookie, Value: token})
	s.Equal(http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/shares", nil, s.adminCookie())
	s.Require().Equal(http.StatusOK, w.Code)
	var recs []json.RawMessage
	s.Require().NoError(json.Unmarshal(env.Data, &recs))
	s.Len(recs, 1)

	w, env = s.do(http.MethodGet, "/api/v1/containers", nil, s.adminCookie())
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &recs))
	s.Len(recs, 1)
	s.NotContains(string(env.Data), "secretHash")
}

func (s *RouterSuite) TestPresignWithoutStorage() {
	w, _ := s.do(http.MethodPost, "/api/v1/files/presign", map[string]any{
		"files": []map[string]any{{"name": "a.txt", "size": 1}},
	})
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RouterSuite) TestAccountFillsUploader() {
	w, _ := s.do(http.MethodPost, "/api/v1/auth/sign-up", map[string]any{
		"username": "carol", "email": "carol@example.com", "password": "hunter22",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "carol", "password": "nope"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "carol", "password": "hunter22"})
	s.Require().Equal(http.StatusOK, w.Code)
	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			session = c
		}
	}
	s.Require().NotNil(session)

	w, env := s.do(http.MethodPost, "/api/v1/shares", map[string]any{"files": twoFiles()}, session)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		Code string `json:"code"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))

	w, env = s.do(http.MethodGet, "/api/v1/resolve/"+data.Code, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(string(env.Data), `"uploaderName":"carol"`)

	// Without a session the uploader name is required.
	w, _ = s.do(http.MethodPost, "/api/v1/shares", map[string]any{"files": twoFiles()})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestGoogleLoginDisabled() {
	w, _ := s.do(http.MethodGet, "/api/v1/auth/google/login", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
