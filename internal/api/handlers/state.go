package handlers

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rohits-web03/codebox/internal/utils"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute

	flowLogin    = "login"
	flowRegister = "register"
)

var errStateMismatch = errors.New("oauth state does not match")

// oauthState travels through Google and back. The same value is pinned in a
// short-lived cookie so the callback can tell it started the flow.
type oauthState struct {
	Nonce string `json:"n"`
	Flow  string `json:"f"`
}

func newOAuthState(flow string) (string, error) {
	nonce, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	if flow != flowRegister {
		flow = flowLogin
	}
	payload, err := json.Marshal(oauthState{Nonce: nonce, Flow: flow})
	if err != nil {
		return "", fmt.Errorf("failed to marshal state data: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func parseOAuthState(raw string) (oauthState, error) {
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return oauthState{}, fmt.Errorf("failed to decode state payload: %w", err)
	}
	var st oauthState
	if err := json.Unmarshal(payload, &st); err != nil {
		return oauthState{}, fmt.Errorf("failed to unmarshal state JSON: %w", err)
	}
	if st.Nonce == "" {
		return oauthState{}, errors.New("state has no nonce")
	}
	return st, nil
}

func (h *Handler) pinState(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/v1/auth/google",
		MaxAge:   int(stateTTL.Seconds()),
		Secure:   h.cfg.IsProduction(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// verifyState checks the returned state against the pinned cookie and
// clears the cookie either way.
func (h *Handler) verifyState(w http.ResponseWriter, r *http.Request) (oauthState, error) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/api/v1/auth/google",
		MaxAge:   -1,
		Secure:   h.cfg.IsProduction(),
		HttpOnly: true,
	})

	returned := r.FormValue("state")
	pinned, err := r.Cookie(stateCookie)
	if err != nil || returned == "" ||
		subtle.ConstantTimeCompare([]byte(pinned.Value), []byte(returned)) != 1 {
		return oauthState{}, errStateMismatch
	}
	return parseOAuthState(returned)
}
