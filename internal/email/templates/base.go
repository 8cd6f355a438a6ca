package templates

import (
	_ "embed"
)

//go:embed compliment_received.html
var complimentReceivedHTML string

//go:embed welcome.html
var welcomeHTML string

//go:embed unread_digest.html
var unreadDigestHTML string
