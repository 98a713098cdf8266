package domain

import "time"

// NotificationReceipt is the immutable audit record of one fan-out attempt.
// Recipients is the exact address list used at send time; RecipientCount
// always equals len(Recipients).
type NotificationReceipt struct {
	ID             string
	PostID         string
	Title          string
	Content        string
	Type           PostType
	PublishedAt    time.Time
	SentAt         time.Time
	RecipientCount int
	Recipients     []string
	Delivered      int
	Failed         int
}
