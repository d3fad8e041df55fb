package handler

import (
	"net/http"

	"github.com/budgetbeyond/budget-beyond/internal/view"
)

// HandleIndex redirects the root URL to the home page.
// GET /
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleHome renders the dashboard with a personalized greeting.
// GET /home (authenticated + verified)
func HandleHome(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	view.Render(w, "home", view.Page{
		Title:    "Home",
		UserName: user.FullName(),
		Flash:    popFlash(w, r),
		Data:     user.FirstName,
	})
}

// HandleSettings renders the account settings page.
// GET /settings (authenticated + verified)
func HandleSettings(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	view.Render(w, "settings", view.Page{
		Title:    "Settings",
		UserName: user.FullName(),
		Flash:    popFlash(w, r),
		Data:     user.Email,
	})
}
