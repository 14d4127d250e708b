package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/handlers"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/middleware"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/api/http/presenter"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/annotator"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/auth"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/extractor"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/health"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/health/checkers"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/portfolio"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/repository/memory"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/security/jwt"
	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/site"
)

const (
	secret = "router-secret"
	issuer = "test"
)

type textExtractor struct{}

func (textExtractor) Extract(data []byte) (extractor.Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return extractor.Document{}, extractor.ErrNotPDF
	}
	text := strings.TrimPrefix(string(data), "%PDF")
	if strings.TrimSpace(text) == "" {
		return extractor.Document{}, extractor.ErrEmptyText
	}
	return extractor.Document{Text: text, PageCount: 1}, nil
}

// cannedAnnotator fails like an unreachable model when the text asks it to.
type cannedAnnotator struct{}

func (cannedAnnotator) Annotate(ctx context.Context, text string) (annotator.Result, error) {
	if strings.Contains(text, "MODEL_DOWN") {
		return annotator.Result{}, errors.New("openrouter: status 503")
	}
	return annotator.Result{Bio: "Engineer <b>bold</b>.", Skills: []string{"Go", "Docker"}}, nil
}

type testEnv struct {
	app    *fiber.App
	outDir string
}

func newEnv(t *testing.T, maxBytes int64) testEnv {
	t.Helper()
	root := t.TempDir()
	tplDir := filepath.Join(root, "templates")
	outDir := filepath.Join(root, "out")
	pagesDir := filepath.Join(root, "pages")
	require.NoError(t, portfolio.Seed(tplDir))
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.MkdirAll(pagesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "index.html"), []byte("<h1>upload</h1>"), 0o644))

	renderer := portfolio.NewRenderer(tplDir, outDir)
	svc := site.NewService(textExtractor{}, cannedAnnotator{}, renderer, memory.NewJobRepository())
	authUC := auth.NewAuthService(memory.NewUserRepository(), jwt.NewGenerator(secret, issuer, time.Hour))
	verifier := jwt.NewVerifier(secret, issuer)

	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler})
	app.Use(middleware.RequestID(), middleware.Logger(), middleware.Recover())
	Register(app, Handlers{
		Site:   handlers.NewSiteHandler(svc, maxBytes, pagesDir),
		Jobs:   handlers.NewJobsHandler(svc),
		Themes: handlers.NewThemesHandler(renderer),
		Auth:   handlers.NewAuthHandler(authUC),
		Health: handlers.NewHealthHandler(health.NewService(checkers.NewTemplatesChecker(tplDir), checkers.NewOutputChecker(outDir))),
	}, verifier.Required(), verifier.Optional())
	return testEnv{app: app, outDir: outDir}
}

func uploadRequest(t *testing.T, fields map[string]string, file []byte, token string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if file != nil {
		fw, err := w.CreateFormFile("file", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/generate", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func jsonRequest(method, path, body, token string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func generate(t *testing.T, env testEnv, token string) handlers.GenerateResponse {
	t.Helper()
	resp, body := send(t, env.app, uploadRequest(t, map[string]string{"theme": "neo", "primary_color": "#123456"}, []byte("%PDF Go developer"), token))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out handlers.GenerateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestGenerate_PreviewAndDownload(t *testing.T) {
	env := newEnv(t, 1<<20)
	out := generate(t, env, "")

	assert.True(t, portfolio.ValidJobID(out.JobID))
	assert.Equal(t, "/preview/"+out.JobID, out.PreviewURL)

	resp, _ := send(t, env.app, httptest.NewRequest(http.MethodGet, out.PreviewURL, nil))
	require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, out.PreviewURL+"/", resp.Header.Get("Location"))

	resp, page := send(t, env.app, httptest.NewRequest(http.MethodGet, out.PreviewURL+"/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), `<span class="pill">Go</span>`)
	assert.Contains(t, string(page), "Engineer &lt;b&gt;bold&lt;/b&gt;.")

	resp, css := send(t, env.app, httptest.NewRequest(http.MethodGet, out.PreviewURL+"/style.css", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(css), "#123456")

	resp, archive := send(t, env.app, httptest.NewRequest(http.MethodGet, "/download/"+out.JobID, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "portfolio_"+out.JobID+".zip")
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"index.html", "style.css"}, names)
}

func TestGenerate_Rejections(t *testing.T) {
	env := newEnv(t, 64)

	cases := []struct {
		name   string
		fields map[string]string
		file   []byte
		status int
	}{
		{"missing file", map[string]string{"theme": "neo"}, nil, http.StatusBadRequest},
		{"missing theme", map[string]string{}, []byte("%PDF x"), http.StatusBadRequest},
		{"path traversal theme", map[string]string{"theme": "../etc"}, []byte("%PDF x"), http.StatusBadRequest},
		{"css injection colour", map[string]string{"theme": "neo", "primary_color": "red;}body{"}, []byte("%PDF x"), http.StatusBadRequest},
		{"unknown theme", map[string]string{"theme": "retro"}, []byte("%PDF x"), http.StatusBadRequest},
		{"not a pdf", map[string]string{"theme": "neo"}, []byte("hello"), http.StatusBadRequest},
		{"no text", map[string]string{"theme": "neo"}, []byte("%PDF   "), http.StatusUnprocessableEntity},
		{"too large", map[string]string{"theme": "neo"}, bytes.Repeat([]byte("a"), 65), http.StatusRequestEntityTooLarge},
		{"model failure", map[string]string{"theme": "neo"}, []byte("%PDF MODEL_DOWN"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := send(t, env.app, uploadRequest(t, tc.fields, tc.file, ""))
			assert.Equal(t, tc.status, resp.StatusCode, string(body))

			var apiErr presenter.ApiError
			require.NoError(t, json.Unmarshal(body, &apiErr))
			assert.Equal(t, tc.status, apiErr.Code)
			assert.NotEmpty(t, apiErr.RequestID)
		})
	}
}

func TestGenerate_ModelFailureHidesCause(t *testing.T) {
	env := newEnv(t, 1<<20)
	resp, body := send(t, env.app, uploadRequest(t, map[string]string{"theme": "glass"}, []byte("%PDF MODEL_DOWN"), ""))
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var apiErr presenter.ApiError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.Equal(t, "language model request failed", apiErr.Detail)
	assert.NotContains(t, string(body), "openrouter")

	entries, err := os.ReadDir(env.outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no site is written when annotation fails")
}

func TestPreview_UnknownJob(t *testing.T) {
	env := newEnv(t, 1<<20)
	for _, path := range []string{"/preview/job_000000", "/preview/..%2f..%2fetc", "/download/job_zzzzzz"} {
		resp, _ := send(t, env.app, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestAccountsAndHistory(t *testing.T) {
	env := newEnv(t, 1<<20)

	resp, body := send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"dev@example.com","password":"hunter2hunter2"}`, ""))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"dev@example.com","password":"hunter2hunter2"}`, ""))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"dev@example.com","password":"wrong-password"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"dev@example.com","password":"hunter2hunter2"}`, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)

	resp, _ = send(t, env.app, jsonRequest(http.MethodGet, "/api/v1/jobs", "", ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	generate(t, env, "")
	mine := generate(t, env, login.Token)

	resp, body = send(t, env.app, jsonRequest(http.MethodGet, "/api/v1/jobs?limit=5", "", login.Token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []struct {
			JobID      string   `json:"jobId"`
			Skills     []string `json:"skills"`
			PreviewURL string   `json:"previewUrl"`
		} `json:"items"`
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, mine.JobID, list.Items[0].JobID)
	assert.Equal(t, []string{"Go", "Docker"}, list.Items[0].Skills)
	assert.Equal(t, 5, list.Limit)

	resp, _ = send(t, env.app, jsonRequest(http.MethodDelete, "/api/v1/jobs/"+mine.JobID, "", login.Token))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err := os.Stat(filepath.Join(env.outDir, mine.JobID+".zip"))
	assert.True(t, os.IsNotExist(err))

	resp, _ = send(t, env.app, jsonRequest(http.MethodGet, "/api/v1/jobs/"+mine.JobID, "", login.Token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegister_Validation(t *testing.T) {
	env := newEnv(t, 1<<20)

	resp, _ := send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"nope","password":"hunter2hunter2"}`, ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"email":"a@b.io","password":"short"}`, ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = send(t, env.app, jsonRequest(http.MethodPost, "/api/v1/auth/register", `{`, ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIndexThemesAndHealth(t *testing.T) {
	env := newEnv(t, 1<<20)

	resp, body := send(t, env.app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "upload")

	resp, body = send(t, env.app, httptest.NewRequest(http.MethodGet, "/api/v1/themes", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"themes":["glass","neo"]}`, string(body))

	resp, _ = send(t, env.app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = send(t, env.app, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep health.Report
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.True(t, rep.Ready)
	assert.Equal(t, "ok", rep.Checks["templates"])
}
