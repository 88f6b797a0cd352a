// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

const sessionCookieName = "session_id"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はユーザー登録・ログイン関連のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
	}
}

// credentialsForm はユーザー名とパスワードを持つリクエストボディ。
// JSONボディとHTMLフォームの両方を受け付ける。
type credentialsForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func parseCredentials(r *http.Request) (*credentialsForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var form credentialsForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return nil, err
		}
		return &form, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &credentialsForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}, nil
}

// Register は新規ユーザーを登録する。
// POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := parseCredentials(r)
	if err != nil || form.Username == "" || form.Password == "" {
		writeMessage(w, r, http.StatusBadRequest, "ユーザー名とパスワードを指定してください。")
		return
	}

	user, err := h.service.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeUsernameTaken {
			middleware.WriteErrorResponse(w, http.StatusConflict, apiErr)
			return
		}
		slog.Error("failed to register user", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	writeMessage(w, r, http.StatusOK, "ユーザーを登録しました。")
}

// Login はユーザー名とパスワードを検証し、セッションCookieを発行する。
// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := parseCredentials(r)
	if err != nil || form.Username == "" || form.Password == "" {
		writeMessage(w, r, http.StatusBadRequest, "ユーザー名とパスワードを指定してください。")
		return
	}

	session, err := h.service.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrCodeLoginFailed {
			middleware.WriteErrorResponse(w, http.StatusUnauthorized, apiErr)
			return
		}
		slog.Error("failed to login", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, r, http.StatusOK, "ログインしました。")
}

// Logout はセッションを破棄する。
// POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// セッションCookieの取得
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		// セッションをDBから削除
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	// セッションCookieをクリア
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeMessage(w, r, http.StatusOK, "ログアウトしました。")
}

// Me は現在のログインユーザー情報を返す。
// GET /api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("failed to get current user", slog.String("error", err.Error()))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}
