// internal/email/templates/unread_digest.go
package templates

import (
	"html/template"
	"strings"
	"time"
)

var unreadDigestTmpl = template.Must(template.New("unread_digest").Parse(unreadDigestHTML))

// UnreadDigestData holds the data for the daily unread digest email.
type UnreadDigestData struct {
	Username string
	Unread   int
	InboxURL string
	Year     int
}

func RenderUnreadDigest(data UnreadDigestData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf strings.Builder
	err := unreadDigestTmpl.Execute(&buf, data)
	return buf.String(), err
}
