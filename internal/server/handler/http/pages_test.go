package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWebRoot lays out a web root with every default page plus a few assets.
func writeWebRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"public/style.css":            "body{}",
		"public2/style.css":           "shadowed",
		"public2/admission.js":        "submit()",
		"public/staff_login/login.js": "login()",
	}
	for _, p := range DefaultPages {
		files[p.File] = "<html>" + p.Path + "</html>"
	}
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func TestPageHandler_Serve(t *testing.T) {
	h := NewPageHandler(writeWebRoot(t))

	for _, p := range h.Pages {
		t.Run(p.Path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Serve(p)(rec, httptest.NewRequest(http.MethodGet, p.Path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "<html>"+p.Path+"</html>", rec.Body.String())
		})
	}
}

func TestPageHandler_Assets(t *testing.T) {
	h := NewPageHandler(writeWebRoot(t))

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/style.css", http.StatusOK, "body{}"},
		{"/admission.js", http.StatusOK, "submit()"},
		{"/login.js", http.StatusOK, "login()"},
		{"/missing.png", http.StatusNotFound, ""},
		{"/staff_login", http.StatusNotFound, ""},
		{"/../../etc/passwd", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path = tt.path
			h.Assets(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestPageHandler_AssetsRejectsWrites(t *testing.T) {
	h := NewPageHandler(writeWebRoot(t))

	rec := httptest.NewRecorder()
	h.Assets(rec, httptest.NewRequest(http.MethodPost, "/style.css", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPageHandler_AssetsHidesRestrictedPages(t *testing.T) {
	h := NewPageHandler(writeWebRoot(t))

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/Add_user/add.html", http.StatusNotFound},
		{"/Table_data/admission_history.html", http.StatusNotFound},
		{"/index.html", http.StatusOK},
		{"/admission.html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Assets(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
