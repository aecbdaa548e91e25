package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamestorehq/gamestore/app/services"
	"github.com/gamestorehq/gamestore/app/views"
	"github.com/gamestorehq/gamestore/pkg/auth"
	"github.com/gamestorehq/gamestore/pkg/flash"
	"github.com/gamestorehq/gamestore/pkg/form"
	"github.com/gamestorehq/gamestore/pkg/logger"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type registerForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`

	Errors map[string]string `form:"-"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`

	Errors map[string]string `form:"-"`
}

func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, http.StatusOK, "register", registerForm{})
}

// Register creates the account and signs the new user straight in.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var f registerForm
	errs, err := form.Bind(r, &f)
	if err != nil {
		views.RenderError(w, r, http.StatusBadRequest, "Could not read the form submission.")
		return
	}
	if errs != nil {
		f.Errors = errs
		views.Render(w, r, http.StatusUnprocessableEntity, "register", f)
		return
	}

	user, err := c.service.Register(f.Name, f.Email, f.Password)
	if errors.Is(err, services.ErrDuplicateEmail) {
		flash.Set(w, "You've already signed up with that email, log in instead!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("register failed", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Registration failed, please try again.")
		return
	}

	if err := auth.IssueSession(w, user.ID); err != nil {
		logger.WithCtx(r.Context()).Error("issue session", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Registration failed, please try again.")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, http.StatusOK, "login", loginForm{})
}

// Login authenticates and redirects home. The two failure modes re-render
// the login page with their own inline notice, keeping the submitted email
// in the form.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var f loginForm
	errs, err := form.Bind(r, &f)
	if err != nil {
		views.RenderError(w, r, http.StatusBadRequest, "Could not read the form submission.")
		return
	}
	if errs != nil {
		f.Errors = errs
		views.Render(w, r, http.StatusUnprocessableEntity, "login", f)
		return
	}

	user, err := c.service.Login(f.Email, f.Password)
	switch {
	case errors.Is(err, services.ErrUnknownEmail):
		f.Errors = map[string]string{"email": "That email does not exist, please try again."}
		views.Render(w, r, http.StatusOK, "login", f)
		return
	case errors.Is(err, services.ErrWrongPassword):
		f.Errors = map[string]string{"password": "Password incorrect, please try again."}
		views.Render(w, r, http.StatusOK, "login", f)
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Login failed, please try again.")
		return
	}

	if err := auth.IssueSession(w, user.ID); err != nil {
		logger.WithCtx(r.Context()).Error("issue session", slog.Any("error", err))
		views.RenderError(w, r, http.StatusInternalServerError, "Login failed, please try again.")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie. There is no server-side state to drop.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
