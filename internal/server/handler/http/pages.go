package http

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/atinyakov/AdmissionDesk/internal/models"
)

// Page maps a route to an HTML file under the web root.
type Page struct {
	// Path is the route the page is served on.
	Path string
	// File is the page location relative to the web root.
	File string
	// Roles lists the session roles allowed to view the page. Empty means public.
	Roles []models.Role
	// LoginPath is where visitors without a suitable session are sent.
	LoginPath string
}

// DefaultPages is the admissions site's page table.
var DefaultPages = []Page{
	{Path: "/", File: "public/index.html"},
	{Path: "/login", File: "public/staff_login/login.html"},
	{Path: "/admin_login", File: "public/admin_login/admin_login.html"},
	{Path: "/admissions", File: "public2/admission.html"},
	{
		Path:      "/admission_data",
		File:      "public/Table_data/admission_history.html",
		Roles:     []models.Role{models.RoleStaff, models.RoleAdmin},
		LoginPath: "/login",
	},
	{
		Path:      "/adduser",
		File:      "public/Add_user/add.html",
		Roles:     []models.Role{models.RoleAdmin},
		LoginPath: "/admin_login",
	},
}

// DefaultAssetDirs are searched in order for any other GET path.
var DefaultAssetDirs = []string{"public", "public2", "public/staff_login"}

// PageHandler serves the page table and static assets from Root.
type PageHandler struct {
	Root      string
	Pages     []Page
	AssetDirs []string
}

// NewPageHandler serves DefaultPages and DefaultAssetDirs from root.
func NewPageHandler(root string) *PageHandler {
	return &PageHandler{Root: root, Pages: DefaultPages, AssetDirs: DefaultAssetDirs}
}

// Serve returns a handler that writes the page's file.
func (h *PageHandler) Serve(p Page) http.HandlerFunc {
	file := filepath.Join(h.Root, filepath.FromSlash(p.File))
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, file)
	}
}

// Assets serves the first regular file matching the request path in
// AssetDirs. Directories, files of role-restricted pages and misses answer 404.
func (h *PageHandler) Assets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	for _, dir := range h.AssetDirs {
		fs := http.Dir(filepath.Join(h.Root, filepath.FromSlash(dir)))
		f, err := fs.Open(name)
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() || h.guarded(filepath.Join(h.Root, filepath.FromSlash(dir), filepath.FromSlash(name))) {
			f.Close()
			continue
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		f.Close()
		return
	}
	http.NotFound(w, r)
}

// guarded reports whether file backs a page that requires a session.
func (h *PageHandler) guarded(file string) bool {
	for _, p := range h.Pages {
		if len(p.Roles) > 0 && filepath.Join(h.Root, filepath.FromSlash(p.File)) == file {
			return true
		}
	}
	return false
}
