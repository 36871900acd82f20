package handler

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips every tag from free text stored on bookings and tickets.
var textPolicy = bluemonday.StrictPolicy()

func cleanText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
