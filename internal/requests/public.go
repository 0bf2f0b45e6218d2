package requests

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated, rate-limited browse endpoint.
type PublicHandler struct {
	repo *Repo
}

// RegisterPublic mounts the public listing. The caller attaches the rate
// limiter middleware to rg before registering.
func RegisterPublic(rg *gin.RouterGroup, repo *Repo) {
	h := &PublicHandler{repo: repo}
	rg.GET("/public", h.listPublic)
}

func (h *PublicHandler) listPublic(c *gin.Context) {
	filter, fieldErrs := ParseListFilter(c.Request.URL.Query())
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid query parameters", "details": fieldErrs})
		return
	}

	items, total, err := h.repo.ListPublic(c.Request.Context(), filter)
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
