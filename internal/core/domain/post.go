package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PostStatus represents the lifecycle state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

// PostType classifies a post for the public feeds.
type PostType string

const (
	TypeAnnouncement PostType = "announcement"
	TypeEvent        PostType = "event"
	TypeGeneral      PostType = "general"
)

// ValidStatus reports whether s is a known post status.
func ValidStatus(s PostStatus) bool {
	return s == StatusDraft || s == StatusScheduled || s == StatusPublished
}

// ValidType reports whether t is a known post type.
func ValidType(t PostType) bool {
	return t == TypeAnnouncement || t == TypeEvent || t == TypeGeneral
}

// Publication captures a post's status together with the timestamps that
// status implies. Values are only built through Drafted, ScheduledAt and
// PublishedAt, so a scheduled post always carries its schedule instant and
// never a publication instant, and vice versa.
type Publication struct {
	Status       PostStatus
	PublishedAt  *time.Time
	ScheduledFor *time.Time
}

// Drafted returns the publication state of a draft: no timestamps.
func Drafted() Publication {
	return Publication{Status: StatusDraft}
}

// ScheduledAt returns the publication state of a post scheduled for at.
func ScheduledAt(at time.Time) Publication {
	at = at.UTC()
	return Publication{Status: StatusScheduled, ScheduledFor: &at}
}

// PublishedAt returns the publication state of a post published at the given
// instant.
func PublishedAt(at time.Time) Publication {
	at = at.UTC()
	return Publication{Status: StatusPublished, PublishedAt: &at}
}

// ExcerptLimit is the maximum number of characters in a derived excerpt,
// excluding the ellipsis marker.
const ExcerptLimit = 140

// Excerpt derives a post excerpt from its content: whitespace runs collapse
// to single spaces, and the result is truncated to ExcerptLimit characters
// with an ellipsis appended when anything was cut.
func Excerpt(content string) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(collapsed) <= ExcerptLimit {
		return collapsed
	}
	runes := []rune(collapsed)
	return string(runes[:ExcerptLimit]) + "…"
}

// Post is the core aggregate: one announcement, event or general article.
// Excerpt is always derived from Content, never authored directly.
type Post struct {
	ID            string
	Title         string
	Content       string
	Type          PostType
	Publication   Publication
	AuthorEmail   string
	AuthorName    string
	CoverImageURL string
	Excerpt       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
