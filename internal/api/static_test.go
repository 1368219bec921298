package api

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func newStaticRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	files := map[string]string{
		"index.html": "<html>dashboard</html>",
		"ec2.html":   "<html>manager</html>",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "icons"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "icons", "il.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	RegisterStaticRoutes(r, dir)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestDashboardServed(t *testing.T) {
	r := newStaticRouter(t)

	w := get(r, "/")
	if w.Code != 200 {
		t.Fatalf("GET / = %d", w.Code)
	}
	if w.Body.String() != "<html>dashboard</html>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestManagerPageNoCache(t *testing.T) {
	r := newStaticRouter(t)

	w := get(r, "/ec2")
	if w.Code != 200 {
		t.Fatalf("GET /ec2 = %d", w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := w.Header().Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q", got)
	}
	if got := w.Header().Get("Expires"); got != "0" {
		t.Errorf("Expires = %q", got)
	}
}

func TestLegacyPathsRedirect(t *testing.T) {
	r := newStaticRouter(t)

	w := get(r, "/ec2.html")
	if w.Code != 301 {
		t.Errorf("GET /ec2.html = %d, want 301", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/ec2" {
		t.Errorf("Location = %q, want /ec2", got)
	}

	w = get(r, "/index.html")
	if w.Code != 301 {
		t.Errorf("GET /index.html = %d, want 301", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Errorf("Location = %q, want /", got)
	}
}

func TestIcons(t *testing.T) {
	r := newStaticRouter(t)

	if w := get(r, "/icons/il.svg"); w.Code != 200 {
		t.Errorf("GET /icons/il.svg = %d, want 200", w.Code)
	}
	if w := get(r, "/icons/missing.svg"); w.Code != 404 {
		t.Errorf("GET /icons/missing.svg = %d, want 404", w.Code)
	}
}
