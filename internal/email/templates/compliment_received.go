// internal/email/templates/compliment_received.go
package templates

import (
	"html/template"
	"strings"
	"time"
)

var complimentReceivedTmpl = template.Must(template.New("compliment_received").Parse(complimentReceivedHTML))

// ComplimentReceivedData holds the data for the new compliment alert email.
type ComplimentReceivedData struct {
	Username string
	InboxURL string
	Year     int
}

// RenderComplimentReceived renders the new compliment alert email HTML. The
// message text itself is never included: the recipient reads it in their
// inbox, unread state intact.
func RenderComplimentReceived(data ComplimentReceivedData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf strings.Builder
	err := complimentReceivedTmpl.Execute(&buf, data)
	return buf.String(), err
}
