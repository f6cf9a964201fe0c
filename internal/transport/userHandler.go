package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketanywhere/ticketanywhere/internal/service"
	"github.com/ticketanywhere/ticketanywhere/internal/transport/middleware"
)

type UserHandler struct {
	authService  service.AuthService
	cookieName   string
	cookieMaxAge int
	cookieSecure bool
}

func NewUserHandler(authService service.AuthService, cookieName string, cookieMaxAge int, cookieSecure bool) *UserHandler {
	return &UserHandler{
		authService:  authService,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// Login accepts an identity already verified by the external OAuth
// collaborator, finds or creates the user and issues a session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(h.cookieName, session.Token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err == nil && token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
