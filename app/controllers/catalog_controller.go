package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gamestorehq/gamestore/app/models"
	"github.com/gamestorehq/gamestore/app/services"
	"github.com/gamestorehq/gamestore/app/views"
	"github.com/gamestorehq/gamestore/pkg/form"
	"github.com/gamestorehq/gamestore/pkg/logger"
	"github.com/gamestorehq/gamestore/pkg/storage"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

type addGameForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Price    string `form:"price" validate:"required,price"`
	ImageURL string `form:"img_url" validate:"nullable,url"`

	Errors map[string]string `form:"-"`
}

// Index is the storefront home page: the full catalog.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	games, err := c.service.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("list catalog", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not load the catalog.")
		return
	}
	views.Render(w, r, http.StatusOK, "index", games)
}

func (c *CatalogController) ShowAdd(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, http.StatusOK, "add", addGameForm{})
}

// Add creates a catalog item. The image comes from either a URL field or an
// uploaded file; an upload goes through the storage manager and its public
// URL wins over the URL field.
func (c *CatalogController) Add(w http.ResponseWriter, r *http.Request) {
	var f addGameForm
	errs, err := form.Bind(r, &f)
	if err != nil {
		views.RenderError(w, r, http.StatusBadRequest, "Could not read the form submission.")
		return
	}
	if errs != nil {
		f.Errors = errs
		views.Render(w, r, http.StatusUnprocessableEntity, "add", f)
		return
	}

	if url, err := c.storeUpload(r); err != nil {
		logger.WithCtx(r.Context()).Error("store upload", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not store the uploaded image.")
		return
	} else if url != "" {
		f.ImageURL = url
	}

	if _, err := c.service.Add(f.Name, f.Price, f.ImageURL); err != nil {
		if errors.Is(err, models.ErrBadPrice) {
			f.Errors = map[string]string{"price": "The price must be a whole-unit amount with a leading $, like $20."}
			views.Render(w, r, http.StatusUnprocessableEntity, "add", f)
			return
		}
		logger.WithCtx(r.Context()).Error("add game", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Could not add the game.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// storeUpload saves an optional "image" multipart file and returns its
// public URL, or "" when the field was left empty.
func (c *CatalogController) storeUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	name = strings.ReplaceAll(name, " ", "_")
	path := fmt.Sprintf("images/%d_%s", time.Now().UnixNano(), name)

	if err := storage.PutStream(path, file); err != nil {
		return "", err
	}
	return storage.URL(path), nil
}
