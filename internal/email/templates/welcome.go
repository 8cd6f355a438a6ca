// internal/email/templates/welcome.go
package templates

import (
	"html/template"
	"strings"
	"time"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeHTML))

// WelcomeData holds the data for the signup welcome email.
type WelcomeData struct {
	Username string
	SendURL  string
	Year     int
}

func RenderWelcome(data WelcomeData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf strings.Builder
	err := welcomeTmpl.Execute(&buf, data)
	return buf.String(), err
}
