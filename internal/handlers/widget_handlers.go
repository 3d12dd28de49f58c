package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ramservice/repair-quote-api/internal/web"
)

// GetWidgetScript serves the embeddable widget at GET /widget.js.
func (h *Handlers) GetWidgetScript(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript", web.WidgetJS)
}

// GetEmbedSnippet serves GET /embed: the loader tag shops paste into their
// theme. The base URL is APP_URL when configured, else the request host.
func (h *Handlers) GetEmbedSnippet(c *gin.Context) {
	base := strings.TrimRight(h.Config.AppURL, "/")
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}
	c.Data(http.StatusOK, "text/html", []byte(web.EmbedSnippet(base)))
}

// HealthCheck is the handler for GET /_health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
