package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-account-api/internal/core/auth"
	"go-user-account-api/internal/core/session"
	"go-user-account-api/internal/service"
	mdw "go-user-account-api/internal/transport/http/middleware"
	resp "go-user-account-api/internal/transport/http/response"
)

type CookieOpts struct {
	Name   string
	MaxAge int // seconds
	Secure bool
}

type AuthHandler struct {
	svc    *service.AuthService
	store  session.Store
	jwter  *auth.JWTer
	cookie CookieOpts
	log    *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, store session.Store, jwter *auth.JWTer, cookie CookieOpts, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, store: store, jwter: jwter, cookie: cookie, log: log}
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
	Token  string `json:"token,omitempty"`
}

// Login authenticates, establishes the server-side session behind a
// cookie, and also hands out a bearer token for cookieless clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	_ = c.ShouldBindJSON(&in) // missing fields surface as InvalidInput below

	u, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		resp.Fail(c, err, http.StatusUnauthorized)
		return
	}

	sid := session.NewID()
	if err := h.store.Set(c.Request.Context(), sid, session.Data{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		Nom:    u.Name,
	}); err != nil {
		h.log.Error("session store", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "Login failed")
		return
	}
	c.SetCookie(h.cookie.Name, sid, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)

	token, err := h.jwter.Issue(u.ID, u.Email, string(u.Role), u.Name)
	if err != nil {
		// cookie session is already established, the token is optional
		h.log.Warn("issue token", zap.Error(err))
		token = ""
	}

	resp.OKMessage(c, "Login successful", loginOut{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Active: u.Active,
		Token:  token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	cu, err := h.svc.CurrentUser(mdw.UserID(c))
	if err != nil {
		resp.Fail(c, err, http.StatusUnauthorized)
		return
	}
	resp.OK(c, cu)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	uid := mdw.UserID(c)
	if sid := c.GetString(mdw.KeySessionID); sid != "" {
		if err := h.store.Invalidate(c.Request.Context(), sid); err != nil {
			h.log.Warn("session invalidate", zap.Error(err))
		}
	}
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	h.svc.Logout(uid)
	resp.OKMessage(c, "Logout successful", nil)
}

// SessionInfo reports the session state without requiring one.
func (h *AuthHandler) SessionInfo(c *gin.Context) {
	uid := mdw.UserID(c)
	data := gin.H{
		"authenticated": uid != 0,
		"userId":        nil,
		"userEmail":     nil,
		"userRole":      nil,
		"userNom":       nil,
		"sessionId":     nil,
	}
	if uid != 0 {
		data["userId"] = uid
		data["userEmail"] = c.GetString(mdw.KeyUserEmail)
		data["userRole"] = c.GetString(mdw.KeyUserRole)
		data["userNom"] = c.GetString(mdw.KeyUserNom)
	}
	if sid := c.GetString(mdw.KeySessionID); sid != "" {
		data["sessionId"] = sid
	}
	resp.OK(c, data)
}
