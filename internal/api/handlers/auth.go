package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rohits-web03/codebox/internal/api/middleware"
	"github.com/rohits-web03/codebox/internal/models"
	"github.com/rohits-web03/codebox/internal/repositories"
	"github.com/rohits-web03/codebox/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

func invalidInput(w http.ResponseWriter) {
	utils.Fail(w, http.StatusBadRequest, "Invalid input")
}

// POST /auth/sign-up
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &input); err != nil {
		invalidInput(w)
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Username == "" || input.Password == "" || len(input.Password) > 72 {
		invalidInput(w)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	err = h.users.Create(r.Context(), &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
	})
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrUserExists):
		utils.Fail(w, http.StatusBadRequest, "Username or email is already taken")
		return
	default:
		h.logger.Error("create user", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
	})
}

// POST /auth/login
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &input); err != nil {
		invalidInput(w)
		return
	}
	if input.Username == "" || input.Password == "" {
		invalidInput(w)
		return
	}

	user, err := h.users.GetByUsername(r.Context(), input.Username)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		h.logger.Error("get user", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Google accounts have no password and cannot log in this way.
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.setSessionCookie(w, user); err != nil {
		h.logger.Error("sign token", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
	})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, user *models.User) error {
	tokenString, err := h.auth.IssueToken(user.ID.String(), user.Username)
	if err != nil {
		return err
	}

	isProd := h.cfg.IsProduction()
	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(h.auth.TTL().Seconds()),
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
	return nil
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   h.cfg.IsProduction(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

func (h *Handler) googleDisabled(w http.ResponseWriter) bool {
	if h.oauth != nil {
		return false
	}
	utils.Fail(w, http.StatusNotFound, "Google login is not enabled")
	return true
}

func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.googleDisabled(w) {
		return
	}
	state, err := newOAuthState(r.URL.Query().Get("redirect")) // "login" or "register"
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}
	h.pinState(w, state)

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleDisabled(w) {
		return
	}
	state, err := h.verifyState(w, r)
	if err != nil {
		h.logger.Warn("google callback rejected", zap.Error(err))
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}
	flowType := state.Flow

	token, err := h.oauth.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		h.logger.Warn("google code exchange", zap.Error(err))
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	resp, err := h.oauth.Client(r.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil || json.Unmarshal(data, &googleUser) != nil || googleUser.Email == "" {
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	frontend := h.cfg.FrontendURL
	user, err := h.users.GetByEmail(r.Context(), googleUser.Email)

	switch flowType {
	case flowRegister:
		if err == nil {
			http.Redirect(w, r, frontend+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
			return
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		user = &models.User{
			Username: googleUser.Name,
			Email:    googleUser.Email,
		}
		if err := h.users.Create(r.Context(), user); err != nil {
			h.logger.Error("create google user", zap.Error(err))
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}
	default:
		if errors.Is(err, repositories.ErrNotFound) {
			http.Redirect(w, r, frontend+"/register?error=user_not_found", http.StatusTemporaryRedirect)
			return
		} else if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	if err := h.setSessionCookie(w, user); err != nil {
		http.Error(w, "Failed to create JWT", http.StatusInternalServerError)
		return
	}

	redirectURL := frontend + "/share/send?status=success_login"
	if flowType == flowRegister {
		redirectURL = frontend + "/share/send?status=success_register"
	}
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}
