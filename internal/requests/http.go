package requests

import (
	"errors"
	"log"
	"net/http"

	"github.com/carrylink/carrylink-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.cancel)
	rg.DELETE("/:id/delete", h.hardDelete)
	rg.POST("/:id/fulfill", h.fulfill)
}

// writeError translates lifecycle sentinels into the HTTP taxonomy. Anything
// unrecognized is logged and collapsed to a generic 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not authorized for this request"})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "request is no longer available"})
	default:
		log.Printf("[requests] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
	}
}

func (h *Handler) list(c *gin.Context) {
	filter, fieldErrs := ParseListFilter(c.Request.URL.Query())
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid query parameters", "details": fieldErrs})
		return
	}

	items, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"requests":   items,
		"pagination": NewPagination(total, filter.Limit, filter.Offset),
	})
}

func (h *Handler) create(c *gin.Context) {
	user := auth.CurrentUser(c)

	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if fieldErrs := in.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "details": fieldErrs})
		return
	}

	req, err := h.repo.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "request": req})
}

func (h *Handler) get(c *gin.Context) {
	req, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
}

func (h *Handler) update(c *gin.Context) {
	user := auth.CurrentUser(c)

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if fieldErrs := in.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "details": fieldErrs})
		return
	}

	req, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	// A status-only body takes the override path: the requester may force any
	// status regardless of the current one. Every other edit requires OPEN.
	if in.StatusOnly() {
		if err := CanSetStatus(req, user.ID); err != nil {
			writeError(c, err)
			return
		}
		updated, err := h.repo.SetStatus(c.Request.Context(), req.ID, *in.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "request": updated})
		return
	}

	if err := CanEdit(req, user.ID); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.repo.UpdateFields(c.Request.Context(), req.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "request": updated})
}

func (h *Handler) cancel(c *gin.Context) {
	user := auth.CurrentUser(c)

	req, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := CanCancel(req, user.ID); err != nil {
		writeError(c, err)
		return
	}

	if err := h.repo.Cancel(c.Request.Context(), req.ID, user.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "request cancelled successfully"})
}

func (h *Handler) hardDelete(c *gin.Context) {
	user := auth.CurrentUser(c)

	req, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := CanDelete(req, user.ID); err != nil {
		writeError(c, err)
		return
	}

	if err := h.repo.HardDelete(c.Request.Context(), req.ID, req.RequesterID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "request deleted successfully"})
}

func (h *Handler) fulfill(c *gin.Context) {
	user := auth.CurrentUser(c)

	req, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	// Friendly 400s on the stale read; the transaction re-validates and
	// reports 409 if another fulfiller won in between.
	if err := CanFulfill(req, user.ID); err != nil {
		writeError(c, err)
		return
	}

	updated, err := h.repo.Fulfill(c.Request.Context(), req.ID, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "request accepted successfully", "request": updated})
}
