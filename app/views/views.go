// Package views renders the storefront's server-side HTML pages.
//
// Every page shares one layout; page templates are embedded at build time so
// the binary ships self-contained. Render wraps the page data in a frame
// carrying the signed-in user and any pending flash notice.
package views

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gamestorehq/gamestore/app/gate"
	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/pkg/flash"
	"github.com/gamestorehq/gamestore/pkg/logger"
)

//go:embed templates/*.html
var files embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"index", "register", "login", "cart", "add", "success", "cancel", "error"} {
		pages[name] = template.Must(template.ParseFS(files,
			"templates/layout.html", "templates/"+name+".html"))
	}
}

// frame is the data envelope handed to the layout.
type frame struct {
	User  *models.User
	Flash string
	Data  any
}

// Render writes the named page with the given status code.
func Render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := pages[page]
	if !ok {
		logger.WithCtx(r.Context()).Error("render: unknown page", slog.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	f := frame{Data: data}
	if user, ok := gate.CurrentUser(r.Context()); ok {
		f.User = &user
	}
	if msg, ok := flash.Take(w, r); ok {
		f.Flash = msg
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", f); err != nil {
		logger.WithCtx(r.Context()).Error("render: execute template",
			slog.String("page", page), slog.Any("error", err))
	}
}

// RenderError shows the generic error page with a user-facing message.
func RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	Render(w, r, status, "error", map[string]any{
		"Status":  status,
		"Message": message,
	})
}
