package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tassiius1-pixel/condominio/internal/auth"
	"github.com/tassiius1-pixel/condominio/internal/morador"
)

const (
	refreshCookieName = "refresh"
	tokenAudience     = "condominio"
)

// Login autentica morador por username e senha.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Senha    string `json:"senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if strings.TrimSpace(payload.Username) == "" || strings.TrimSpace(payload.Senha) == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "username e senha são obrigatórios", nil)
		return
	}

	user, err := h.moradores.Authenticate(r.Context(), payload.Username, payload.Senha)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.writeLoginSuccess(w, r, user)
}

// Register cria conta de morador. O papel é sempre MORADOR; promoções
// acontecem depois, pelo administrador.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Nome     string `json:"nome"`
		Username string `json:"username"`
		CPF      string `json:"cpf"`
		Casa     int    `json:"casa"`
		Senha    string `json:"senha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	user, err := h.moradores.Create(r.Context(), morador.CreateInput{
		Nome:     payload.Nome,
		Username: payload.Username,
		CPF:      payload.CPF,
		Casa:     payload.Casa,
		Senha:    payload.Senha,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.writeLoginSuccess(w, r, user)
}

// Refresh rotaciona a sessão: o token atual é consumido e um novo é emitido.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw, err := refreshFromRequest(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "refresh ausente", nil)
		return
	}

	session, err := h.refresh.Consume(r.Context(), raw)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefresh) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "refresh inválido", nil)
			return
		}
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao renovar sessão", nil)
		return
	}

	accessToken, _, err := h.jwt.GenerateAccessToken(session.Subject, session.Roles)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao renovar sessão", nil)
		return
	}

	refreshToken, err := h.refresh.Issue(r.Context(), *session)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao renovar sessão", nil)
		return
	}

	h.setRefreshCookie(w, refreshToken, time.Now().Add(h.cfg.JWTRefreshTTL))
	WriteJSON(w, http.StatusOK, map[string]any{"access_token": accessToken})
}

// Logout revoga o refresh atual e limpa o cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if raw, err := refreshFromRequest(r); err == nil {
		_ = h.refresh.Revoke(r.Context(), raw)
	}

	h.clearRefreshCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me retorna o perfil do usuário autenticado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := h.subjectUUID(r)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "AUTH", "subject inválido", nil)
		return
	}

	user, err := h.moradores.Get(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) writeLoginSuccess(w http.ResponseWriter, r *http.Request, user *morador.Morador) {
	accessToken, _, err := h.jwt.GenerateAccessToken(user.ID.String(), []string{user.Papel})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao autenticar", nil)
		return
	}

	refreshToken, err := h.refresh.Issue(r.Context(), auth.RefreshSession{
		Subject: user.ID.String(),
		Roles:   []string{user.Papel},
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro ao autenticar", nil)
		return
	}

	h.setRefreshCookie(w, refreshToken, time.Now().Add(h.cfg.JWTRefreshTTL))
	WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": accessToken,
		"user":         user,
	})
}

func refreshFromRequest(r *http.Request) (string, error) {
	if c, err := r.Cookie(refreshCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errors.New("refresh ausente")
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string, expires time.Time) {
	secure := !h.devCookies
	sameSite := http.SameSiteNoneMode
	if h.devCookies {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	secure := !h.devCookies
	sameSite := http.SameSiteNoneMode
	if h.devCookies {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}
