package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/gracechapel/content-api/internal/core/ports"
)

// formatNoticeBody renders the HTML body of a publication notice. Post
// content is authored by admins but escaped anyway before it reaches a mail
// client.
func formatNoticeBody(notice ports.AnnounceInput) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 640px; margin: 0 auto; padding: 20px; }\n")
	b.WriteString(".kind { color: #7f8c8d; font-size: 0.85em; text-transform: uppercase; letter-spacing: 0.05em; }\n")
	b.WriteString("h1 { font-size: 1.4em; margin: 8px 0 4px; }\n")
	b.WriteString(".published { color: #7f8c8d; font-size: 0.9em; }\n")
	b.WriteString(".content { margin: 18px 0; white-space: pre-line; }\n")
	b.WriteString(".footer { margin-top: 28px; padding-top: 12px; border-top: 1px solid #ddd; font-size: 0.85em; color: #7f8c8d; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	b.WriteString(fmt.Sprintf("<div class=\"kind\">%s</div>\n", html.EscapeString(string(notice.Type))))
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(notice.Title)))
	b.WriteString(fmt.Sprintf("<div class=\"published\">%s</div>\n",
		notice.PublishedAt.UTC().Format("Jan 2, 2006")))
	b.WriteString(fmt.Sprintf("<div class=\"content\">%s</div>\n", html.EscapeString(notice.Content)))

	b.WriteString("<div class=\"footer\">You are receiving this because you subscribed to church news. ")
	b.WriteString("Reply to this email or visit the website to unsubscribe.</div>\n")
	b.WriteString("</body>\n</html>\n")

	return b.String()
}
