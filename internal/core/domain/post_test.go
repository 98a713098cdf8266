package domain

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestPublication_Constructors(t *testing.T) {
	now := time.Now()

	drafted := Drafted()
	if drafted.Status != StatusDraft || drafted.PublishedAt != nil || drafted.ScheduledFor != nil {
		t.Errorf("unexpected draft state: %+v", drafted)
	}

	scheduled := ScheduledAt(now)
	if scheduled.Status != StatusScheduled {
		t.Errorf("expected status %q, got %q", StatusScheduled, scheduled.Status)
	}
	if scheduled.ScheduledFor == nil || scheduled.PublishedAt != nil {
		t.Errorf("scheduled state must carry only the schedule instant: %+v", scheduled)
	}
	if scheduled.ScheduledFor.Location() != time.UTC {
		t.Error("schedule instant must be normalized to UTC")
	}

	published := PublishedAt(now)
	if published.Status != StatusPublished {
		t.Errorf("expected status %q, got %q", StatusPublished, published.Status)
	}
	if published.PublishedAt == nil || published.ScheduledFor != nil {
		t.Errorf("published state must carry only the publication instant: %+v", published)
	}
}

func TestValidStatusAndType(t *testing.T) {
	for _, s := range []PostStatus{StatusDraft, StatusScheduled, StatusPublished} {
		if !ValidStatus(s) {
			t.Errorf("%q must be a valid status", s)
		}
	}
	if ValidStatus("archived") {
		t.Error("unknown status must be invalid")
	}

	for _, pt := range []PostType{TypeAnnouncement, TypeEvent, TypeGeneral} {
		if !ValidType(pt) {
			t.Errorf("%q must be a valid type", pt)
		}
	}
	if ValidType("sermon") {
		t.Error("unknown type must be invalid")
	}
}

func TestExcerpt_ShortContentUnchanged(t *testing.T) {
	got := Excerpt("A short note.")
	if got != "A short note." {
		t.Errorf("short content must pass through, got %q", got)
	}
	if strings.Contains(got, "…") {
		t.Error("nothing was cut, no ellipsis expected")
	}
}

func TestExcerpt_CollapsesWhitespace(t *testing.T) {
	got := Excerpt("First  line.\n\nSecond\tline.")
	if got != "First line. Second line." {
		t.Errorf("whitespace runs must collapse to single spaces, got %q", got)
	}
}

func TestExcerpt_TruncatesWithEllipsis(t *testing.T) {
	got := Excerpt(strings.Repeat("x", 500))
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated excerpt must end with ellipsis, got %q", got)
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "…")); n != ExcerptLimit {
		t.Errorf("expected %d characters before the ellipsis, got %d", ExcerptLimit, n)
	}
}

func TestExcerpt_LimitCountsRunesNotBytes(t *testing.T) {
	// Multi-byte characters must not be split mid-rune.
	got := Excerpt(strings.Repeat("é", ExcerptLimit+10))
	if !utf8.ValidString(got) {
		t.Fatal("excerpt must remain valid UTF-8")
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "…")); n != ExcerptLimit {
		t.Errorf("expected %d runes before the ellipsis, got %d", ExcerptLimit, n)
	}
}

func TestExcerpt_ExactlyAtLimit(t *testing.T) {
	content := strings.Repeat("y", ExcerptLimit)
	got := Excerpt(content)
	if got != content {
		t.Errorf("content at exactly the limit must not be truncated, got %q", got)
	}
}
