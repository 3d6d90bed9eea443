package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"aniexo/internal/domain/entity"
	"aniexo/internal/handler/http/requestid"
	"aniexo/internal/handler/http/respond"
	"aniexo/internal/usecase/library"
)

// AccountService is the subset of library.Accounts the handlers use.
type AccountService interface {
	Register(ctx context.Context, in library.RegisterInput) (*entity.User, error)
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
}

// Handler serves /api/auth/*.
type Handler struct {
	Accounts     AccountService
	Tokens       *TokenIssuer
	SecureCookie bool
}

// Register mounts the account routes on mux.
func Register(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.Handle("GET /api/auth/me", Required(h.Tokens, http.HandlerFunc(h.Me)))
}

// Register アカウント登録
// @Summary      アカウント登録
// @Description  ユーザー名・メールアドレス（任意）・パスワードでアカウントを作成し、セッショントークンを発行します
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "登録情報"
// @Success      201 {object} respond.Envelope{data=SessionDTO} "登録成功"
// @Failure      400 {object} respond.Envelope "入力が不正"
// @Failure      409 {object} respond.Envelope "ユーザー名が使用済み"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		RecordAuthRequest("register", "failure", time.Since(start))
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Accounts.Register(r.Context(), library.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RecordAuthRequest("register", "failure", time.Since(start))
		var ve *entity.ValidationError
		switch {
		case errors.As(err, &ve):
			respond.Fail(w, http.StatusBadRequest, ve.Message)
		case errors.Is(err, library.ErrUsernameTaken):
			respond.Fail(w, http.StatusConflict, "Username already exists")
		default:
			respond.SafeError(w, http.StatusInternalServerError,
				respond.NewAppError(http.StatusInternalServerError, "Failed to register user", err))
		}
		return
	}

	if !h.startSession(w, user, http.StatusCreated) {
		RecordAuthRequest("register", "failure", time.Since(start))
		return
	}
	RecordAuthRequest("register", "success", time.Since(start))
	logger.Info("user registered", slog.Int64("user_id", user.ID))
}

// Login ログイン
// @Summary      ログイン
// @Description  ユーザー名とパスワードで認証し、セッショントークンを発行します（Cookie にも設定）
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "ログイン情報"
// @Success      200 {object} respond.Envelope{data=SessionDTO} "認証成功"
// @Failure      400 {object} respond.Envelope "リクエストが不正"
// @Failure      401 {object} respond.Envelope "認証失敗"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req loginRequest
	if err := respond.Decode(r, &req); err != nil || req.Username == "" || req.Password == "" {
		RecordAuthRequest("login", "failure", time.Since(start))
		respond.Fail(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.Accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		RecordAuthRequest("login", "failure", time.Since(start))
		if errors.Is(err, library.ErrInvalidCredentials) {
			logger.Warn("authentication failed", slog.String("reason", "invalid_credentials"))
			respond.Fail(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respond.SafeError(w, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "Failed to login", err))
		return
	}

	if !h.startSession(w, user, http.StatusOK) {
		RecordAuthRequest("login", "failure", time.Since(start))
		return
	}
	RecordAuthRequest("login", "success", time.Since(start))
	logger.Info("authentication successful", slog.Int64("user_id", user.ID))
}

// Logout ログアウト
// @Summary      ログアウト
// @Description  セッション Cookie を削除します
// @Tags         auth
// @Produce      json
// @Success      200 {object} respond.Envelope "ログアウト完了"
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respond.OK(w, http.StatusOK, nil)
}

// Me ログインユーザー取得
// @Summary      ログインユーザー取得
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} respond.Envelope{data=UserDTO} "ログイン中のユーザー"
// @Failure      401 {object} respond.Envelope "未認証"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := FromContext(r.Context())
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "Authentication required. Please login.")
		return
	}

	user, err := h.Accounts.Get(r.Context(), p.UserID)
	if errors.Is(err, library.ErrUserNotFound) {
		respond.Fail(w, http.StatusUnauthorized, "User not found. Please login again.")
		return
	}
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "Failed to load user", err))
		return
	}
	respond.OK(w, http.StatusOK, toUserDTO(user))
}

func (h *Handler) startSession(w http.ResponseWriter, user *entity.User, code int) bool {
	token, exp, err := h.Tokens.Issue(user)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, "Failed to create session", err))
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		MaxAge:   int(h.Tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respond.OK(w, code, SessionDTO{User: toUserDTO(user), Token: token, ExpiresAt: exp})
	return true
}
