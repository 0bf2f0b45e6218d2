package auth

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/carrylink/carrylink-backend/internal/users"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	users    *users.Repo
	sessions *SessionCodec
	chain    Chain
	cost     int
}

func Register(rg *gin.RouterGroup, userRepo *users.Repo, sessions *SessionCodec, chain Chain, bcryptCost int) {
	h := &Handler{users: userRepo, sessions: sessions, chain: chain, cost: bcryptCost}

	rg.POST("/register", h.register)
	rg.POST("/session", h.createSession)
	rg.GET("/session", h.getSession)
	rg.DELETE("/session", h.deleteSession)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type registerReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateRegistration(req registerReq) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		errs = append(errs, FieldError{"name", "name must be at least 2 characters"})
	} else if len(name) > 50 {
		errs = append(errs, FieldError{"name", "name must be less than 50 characters"})
	}

	if !emailPattern.MatchString(req.Email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}

	if len(req.Password) < 8 {
		errs = append(errs, FieldError{"password", "password must be at least 8 characters"})
	} else if !hasPasswordClasses(req.Password) {
		errs = append(errs, FieldError{"password", "password must contain at least one lowercase letter, one uppercase letter, and one number"})
	}

	if req.ConfirmPassword == "" {
		errs = append(errs, FieldError{"confirmPassword", "please confirm your password"})
	} else if req.Password != req.ConfirmPassword {
		errs = append(errs, FieldError{"confirmPassword", "passwords don't match"})
	}

	return errs
}

func hasPasswordClasses(pw string) bool {
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if errs := validateRegistration(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "details": errs})
		return
	}

	hash, err := HashPassword(req.Password, h.cost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
		return
	}

	u, err := h.users.Create(c.Request.Context(), users.NewUser{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "user with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": u})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) createSession(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "email and password are required"})
		return
	}

	u, err := h.users.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
		return
	}

	// Externally-provisioned accounts have no password hash and cannot use
	// password login.
	if u.PasswordHash == "" || !VerifyPassword(req.Password, u.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid credentials"})
		return
	}

	cookieToken, err := h.sessions.Issue(u.ID, u.Email, u.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
		return
	}

	apiKey, err := EncodeAPIKey(NewAPIKey(u.ID, u.Email, u.Name, h.sessions.TTL()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
		return
	}

	c.SetCookie(SessionCookie, cookieToken, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "sessionToken": apiKey})
}

func (h *Handler) getSession(c *gin.Context) {
	id, err := h.chain.Resolve(c.Request)
	if err != nil || id == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "authenticated": true, "user": id})
}

// deleteSession clears the cookie and always reports success. There is no
// server-side revocation list, so outstanding api keys stay valid until they
// expire.
func (h *Handler) deleteSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "signed out"})
}
