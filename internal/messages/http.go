package messages

import (
	"errors"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/carrylink/carrylink-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	minContentLen = 1
	maxContentLen = 1000
)

type Handler struct {
	repo *Repo
}

// Register mounts the message routes under the authenticated requests group.
func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("/:id/messages", h.list)
	rg.POST("/:id/messages", h.create)
}

func (h *Handler) list(c *gin.Context) {
	user := auth.CurrentUser(c)

	thread, err := h.repo.GetThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if !thread.CanAccess(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not authorized to view messages for this request"})
		return
	}

	msgs, err := h.repo.ListByRequest(c.Request.Context(), thread.RequestID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": msgs})
}

type createReq struct {
	Content string `json:"content"`
}

func (h *Handler) create(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	// Bounds are in characters, not bytes, so multibyte text gets the full
	// 1000 characters.
	if n := utf8.RuneCountInString(req.Content); n < minContentLen || n > maxContentLen {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "message content must be between 1 and 1000 characters"})
		return
	}

	thread, err := h.repo.GetThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	// Authorization before state: an outsider gets 403 even on a cancelled
	// request, a participant gets 400.
	if !thread.CanAccess(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not authorized to send messages for this request"})
		return
	}
	if !thread.CanPost(user.ID) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "cannot send messages for cancelled requests"})
		return
	}

	msg, err := h.repo.Create(c.Request.Context(), thread.RequestID, user.ID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": msg})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
		return
	}
	log.Printf("[messages] unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}
