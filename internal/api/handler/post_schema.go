package handler

import (
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

type savePostRequest struct {
	Title         string     `json:"title"           validate:"required"`
	Content       string     `json:"content"         validate:"required"`
	Type          string     `json:"type"            validate:"required,oneof=announcement event general"`
	Status        string     `json:"status"          validate:"required,oneof=draft scheduled published"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
	CoverImageURL string     `json:"cover_image_url"`
	// Announce asks for a subscriber notification after a successful publish.
	// It is a per-request decision: re-saving a published post does not
	// re-notify unless asked again (and the announce guard still blocks a
	// second fan-out for the same post).
	Announce bool `json:"announce"`
}

type postResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ScheduledFor  *time.Time `json:"scheduled_for,omitempty"`
	AuthorEmail   string     `json:"author_email"`
	AuthorName    string     `json:"author_name"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	Excerpt       string     `json:"excerpt"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Type:          string(p.Type),
		Status:        string(p.Publication.Status),
		PublishedAt:   p.Publication.PublishedAt,
		ScheduledFor:  p.Publication.ScheduledFor,
		AuthorEmail:   p.AuthorEmail,
		AuthorName:    p.AuthorName,
		CoverImageURL: p.CoverImageURL,
		Excerpt:       p.Excerpt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type announceSummary struct {
	ReceiptID      string `json:"receipt_id"`
	RecipientCount int    `json:"recipient_count"`
	Delivered      int    `json:"delivered"`
	Failed         int    `json:"failed"`
}

type savePostResponse struct {
	ID           string           `json:"id"`
	Announcement *announceSummary `json:"announcement,omitempty"`
}

type promoteResponse struct {
	Promoted int `json:"promoted"`
}
