package sandbox

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/session"
	"github.com/hairizuanbinnoorazman/bizadmin/user"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	userStore user.Store
	sessions  *session.Manager
	tokens    *session.TokenCodec
	logger    logger.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(userStore user.Store, sessions *session.Manager, tokens *session.TokenCodec, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		userStore: userStore,
		sessions:  sessions,
		tokens:    tokens,
		logger:    log,
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request body.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login exchanges an email and password for an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existingUser, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error(r.Context(), "failed to get user", map[string]interface{}{
			"error": err.Error(),
			"email": req.Email,
		})
		respondError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	if !existingUser.CheckPassword(req.Password) {
		h.logger.Warn(r.Context(), "invalid password attempt", map[string]interface{}{
			"email": req.Email,
		})
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sess, err := h.sessions.Create(existingUser.ID, existingUser.Email, existingUser.Role)
	if err != nil {
		h.logger.Error(r.Context(), "failed to create session", map[string]interface{}{
			"error":   err.Error(),
			"user_id": existingUser.ID,
		})
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	token, err := h.tokens.Encode(sess.ID)
	if err != nil {
		h.logger.Error(r.Context(), "failed to encode access token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": existingUser.ID,
		})
		h.sessions.Revoke(sess.ID)
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.logger.Info(r.Context(), "user logged in", map[string]interface{}{
		"user_id": existingUser.ID,
		"role":    string(existingUser.Role),
	})

	respond(w, http.StatusOK, envelope{
		"accessToken": token,
		"role":        existingUser.Role,
		"user":        existingUser,
	})
}

// Logout ends the session behind the request's access token. Unknown tokens
// are ignored.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := AccessToken(r); token != "" {
		if sessionID, err := h.tokens.Decode(token); err == nil {
			h.sessions.Revoke(sessionID)
		}
	}
	respondMessage(w, "logged out successfully")
}

// Verify reports who the access token belongs to. It sits behind
// AuthMiddleware, so reaching it means the token is valid.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSession(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respond(w, http.StatusOK, envelope{
		"user": envelope{
			"id":    sess.UserID,
			"email": sess.Email,
			"role":  sess.Role,
		},
		"expiresAt": sess.ExpiresAt,
	})
}
