package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxmaker/boxmaker-web/internal/box/api"
	"github.com/boxmaker/boxmaker-web/internal/box/service"
	model "github.com/boxmaker/boxmaker-web/pkg/box"
	"github.com/boxmaker/boxmaker-web/pkg/logger"
)

const minimalPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

// recordingRenderer writes a PDF and remembers the arguments it was given
type recordingRenderer struct {
	calls int
	args  []string
	err   error
}

func (r *recordingRenderer) Render(ctx context.Context, outputPath string, args []string) error {
	r.calls++
	r.args = args
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(outputPath, []byte(minimalPDF), 0644)
}

func newTestServer(t *testing.T, renderer service.Renderer) (*httptest.Server, string) {
	t.Helper()

	log := logger.Discard()
	dir := filepath.Join(t.TempDir(), "boxes")
	svc, err := service.New(service.Options{
		Dir:        dir,
		Renderer:   renderer,
		ReclaimAge: time.Hour,
		Logger:     log,
	})
	require.NoError(t, err)

	handler, err := api.NewBoxHandler(svc, log)
	require.NoError(t, err)

	container := restful.NewContainer()
	ws := new(restful.WebService)
	ws.Path("/")
	api.RegisterRoutes(ws, handler)
	container.Add(ws)

	server := httptest.NewServer(container)
	t.Cleanup(server.Close)
	return server, dir
}

func validForm() url.Values {
	return url.Values{
		"width":              {"10"},
		"height":             {"5"},
		"depth":              {"3"},
		"material_thickness": {"0.25"},
		"cut_width":          {"0.1"},
		"notch_length":       {"2"},
		"units":              {"mm"},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestHomeRendersForm(t *testing.T) {
	server, _ := newTestServer(t, &recordingRenderer{})

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body := readBody(t, resp)
	assert.Contains(t, body, `name="material_thickness"`)
	assert.Contains(t, body, `name="bounding_box"`)
	assert.NotContains(t, body, `class="error"`)
}

func TestCreateBoxReturnsAttachment(t *testing.T) {
	renderer := &recordingRenderer{}
	server, dir := newTestServer(t, renderer)

	resp, err := http.PostForm(server.URL+"/", validForm())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	disposition := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment;"), disposition)
	assert.Regexp(t, `filename="?box-\d{8}_\d{6}_\d{6}\.pdf"?`, disposition)
	assert.Equal(t, minimalPDF, readBody(t, resp))

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, []string{"10.0", "5.0", "3.0", "0.25", "0.1", "2.0", "false"}, renderer.args)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateBoxBoundingBoxPresence(t *testing.T) {
	renderer := &recordingRenderer{}
	server, _ := newTestServer(t, renderer)

	form := validForm()
	form.Set("units", "in")
	form.Set("width", "1")
	form.Set("bounding_box", "")

	resp, err := http.PostForm(server.URL+"/", form)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, renderer.args, 7)
	assert.Equal(t, "25.4", renderer.args[0])
	assert.Equal(t, "true", renderer.args[6])
}

func TestCreateBoxMultipart(t *testing.T) {
	renderer := &recordingRenderer{}
	server, _ := newTestServer(t, renderer)

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for key, values := range validForm() {
		require.NoError(t, writer.WriteField(key, values[0]))
	}
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/", writer.FormDataContentType(), strings.NewReader(body.String()))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, renderer.calls)
}

func TestCreateBoxValidationErrors(t *testing.T) {
	renderer := &recordingRenderer{}
	server, _ := newTestServer(t, renderer)

	form := validForm()
	form.Set("width", "wide")
	form.Set("notch_length", "")
	form.Del("depth")

	resp, err := http.PostForm(server.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body := readBody(t, resp)
	assert.Contains(t, body, "Width must be a number! Depth is required! Notch length must be a number!")
	assert.Contains(t, body, `value="wide"`)
	assert.Zero(t, renderer.calls)
}

// renderFunc adapts a function to service.Renderer
type renderFunc func(ctx context.Context, outputPath string, args []string) error

func (f renderFunc) Render(ctx context.Context, outputPath string, args []string) error {
	return f(ctx, outputPath, args)
}

func TestCreateBoxToolFailures(t *testing.T) {
	tests := []struct {
		name     string
		renderer service.Renderer
		status   int
	}{
		{"exit status", &recordingRenderer{err: &model.ToolError{ExitCode: 1}}, http.StatusBadGateway},
		{"timeout", &recordingRenderer{err: fmt.Errorf("%w after 1s", model.ErrToolTimeout)}, http.StatusGatewayTimeout},
		{"unexpected", &recordingRenderer{err: fmt.Errorf("fork failed")}, http.StatusInternalServerError},
		{"no output", renderFunc(func(ctx context.Context, outputPath string, args []string) error {
			return nil
		}), http.StatusBadGateway},
		{"not a pdf", renderFunc(func(ctx context.Context, outputPath string, args []string) error {
			return os.WriteFile(outputPath, []byte("Exception in thread \"main\"\n"), 0644)
		}), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.renderer)

			resp, err := http.PostForm(server.URL+"/", validForm())
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), `class="error"`)
		})
	}
}

func TestCreateBoxMalformedBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"bad escape", "application/x-www-form-urlencoded",
			"width=%zz&height=5&depth=3&material_thickness=0.25&cut_width=0.1&notch_length=2&units=mm"},
		{"multipart without boundary", "multipart/form-data", "width=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &recordingRenderer{}
			server, _ := newTestServer(t, renderer)

			resp, err := http.Post(server.URL+"/", tt.contentType, strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), "could not be read")
			assert.Zero(t, renderer.calls)
		})
	}
}

func TestReclaimBoxes(t *testing.T) {
	server, dir := newTestServer(t, &recordingRenderer{})

	old := filepath.Join(dir, "box-20000101_000000_000000.pdf")
	require.NoError(t, os.WriteFile(old, []byte(minimalPDF), 0644))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	resp, err := http.Post(server.URL+"/api/v1/boxes/reclaim", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result model.BoxReclaimResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.DeletedCount)
	assert.NoFileExists(t, old)
}
