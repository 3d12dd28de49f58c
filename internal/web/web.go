// Package web holds the embeddable storefront assets served by the API.
package web

import (
	_ "embed"
	"fmt"
)

// WidgetJS is the self-contained storefront widget, served at /widget.js.
//
//go:embed widget.js
var WidgetJS []byte

// EmbedSnippet returns the one-line loader shops paste into their theme. It
// creates the mount element if the page doesn't provide one.
func EmbedSnippet(baseURL string) string {
	return fmt.Sprintf(`<script>(function(){var s=document.createElement('script');s.src='%s/widget.js';s.async=true;var mount=document.getElementById('ram-service-widget'); if(!mount){mount=document.createElement('div');mount.id='ram-service-widget';document.body.appendChild(mount);} mount.appendChild(s); })();</script>`, baseURL)
}
