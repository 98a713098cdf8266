package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubReceiptRepo struct {
	receipts  []*domain.NotificationReceipt
	createErr error
}

func (r *stubReceiptRepo) Create(_ context.Context, receipt *domain.NotificationReceipt) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	clone := *receipt
	id := fmt.Sprintf("rcpt_%d", len(r.receipts)+1)
	clone.ID = id
	r.receipts = append(r.receipts, &clone)
	return id, nil
}

func (r *stubReceiptRepo) List(_ context.Context, _ int) ([]*domain.NotificationReceipt, error) {
	return r.receipts, nil
}

type stubGuard struct {
	marked   map[string]bool
	checkErr error
}

func newStubGuard() *stubGuard {
	return &stubGuard{marked: make(map[string]bool)}
}

func (g *stubGuard) Announced(_ context.Context, postID string) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.marked[postID], nil
}

func (g *stubGuard) Mark(_ context.Context, postID string) error {
	g.marked[postID] = true
	return nil
}

// stubMailer records recipients and fails the addresses listed in failing.
type stubMailer struct {
	mu      sync.Mutex
	sent    []string
	failing map[string]bool
}

func newStubMailer() *stubMailer {
	return &stubMailer{failing: make(map[string]bool)}
}

func (m *stubMailer) SendNotice(_ context.Context, to string, _ ports.AnnounceInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	if m.failing[to] {
		return errors.New("smtp rejected")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type notifyFixture struct {
	svc      *NotifyService
	subs     *stubSubscriberRepo
	receipts *stubReceiptRepo
	guard    *stubGuard
	mailer   *stubMailer
}

func newNotifyFixture() *notifyFixture {
	f := &notifyFixture{
		subs:     newStubSubscriberRepo(),
		receipts: &stubReceiptRepo{},
		guard:    newStubGuard(),
		mailer:   newStubMailer(),
	}
	f.svc = NewNotifyService(f.subs, f.receipts, f.guard, f.mailer, 2, discardLogger)
	return f
}

func (f *notifyFixture) addSubscriber(email string, active bool) {
	f.subs.byEmail[email] = &domain.Subscriber{
		Email:        email,
		IsActive:     active,
		SubscribedAt: time.Now().UTC(),
	}
}

func notice(postID string) ports.AnnounceInput {
	return ports.AnnounceInput{
		PostID:      postID,
		Title:       "Easter service",
		Content:     "Join us Sunday at 9am.",
		Type:        domain.TypeEvent,
		PublishedAt: time.Now().UTC(),
	}
}

// ---------------------------------------------------------------------------
// Announce tests
// ---------------------------------------------------------------------------

func TestNotifyService_Announce_ReachesOnlyActiveSubscribers(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("a@example.com", true)
	f.addSubscriber("b@example.com", true)
	f.addSubscriber("c@example.com", true)
	f.addSubscriber("quit@example.com", false)

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RecipientCount != 3 {
		t.Errorf("expected 3 recipients, got %d", result.RecipientCount)
	}
	if result.Delivered != 3 || result.Failed != 0 {
		t.Errorf("expected 3 delivered / 0 failed, got %d / %d", result.Delivered, result.Failed)
	}

	sort.Strings(f.mailer.sent)
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(f.mailer.sent) != len(want) {
		t.Fatalf("expected %d sends, got %d", len(want), len(f.mailer.sent))
	}
	for i, to := range want {
		if f.mailer.sent[i] != to {
			t.Errorf("send %d: expected %q, got %q", i, to, f.mailer.sent[i])
		}
	}
}

func TestNotifyService_Announce_ReceiptListsExactRecipients(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("a@example.com", true)
	f.addSubscriber("b@example.com", true)

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.receipts.receipts) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(f.receipts.receipts))
	}
	receipt := f.receipts.receipts[0]
	if receipt.ID != result.ReceiptID {
		t.Errorf("result must reference the stored receipt: %q vs %q", result.ReceiptID, receipt.ID)
	}
	if receipt.PostID != "post_1" {
		t.Errorf("unexpected receipt post id %q", receipt.PostID)
	}
	if receipt.RecipientCount != 2 || len(receipt.Recipients) != 2 {
		t.Errorf("receipt must list the exact recipient set, got count=%d list=%v", receipt.RecipientCount, receipt.Recipients)
	}
	if receipt.SentAt.IsZero() {
		t.Error("receipt must record when the fan-out ran")
	}
}

func TestNotifyService_Announce_EmptyRegistry_WritesZeroRecipientReceipt(t *testing.T) {
	f := newNotifyFixture()

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err != nil {
		t.Fatalf("empty registry must not error, got %v", err)
	}
	if result.RecipientCount != 0 {
		t.Errorf("expected 0 recipients, got %d", result.RecipientCount)
	}
	if len(f.receipts.receipts) != 1 {
		t.Fatalf("empty fan-out must still leave a receipt, got %d", len(f.receipts.receipts))
	}
	if len(f.mailer.sent) != 0 {
		t.Errorf("no sends expected, got %d", len(f.mailer.sent))
	}
}

func TestNotifyService_Announce_PartialFailure_TalliedInReceipt(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("ok@example.com", true)
	f.addSubscriber("bad@example.com", true)
	f.mailer.failing["bad@example.com"] = true

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err != nil {
		t.Fatalf("partial failure must not error, got %v", err)
	}
	if result.Delivered != 1 || result.Failed != 1 {
		t.Errorf("expected 1 delivered / 1 failed, got %d / %d", result.Delivered, result.Failed)
	}

	receipt := f.receipts.receipts[0]
	if receipt.Delivered != 1 || receipt.Failed != 1 {
		t.Errorf("receipt must carry the per-recipient tallies, got %d / %d", receipt.Delivered, receipt.Failed)
	}
}

func TestNotifyService_Announce_AllSendsFail_ReturnsError(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("a@example.com", true)
	f.addSubscriber("b@example.com", true)
	f.mailer.failing["a@example.com"] = true
	f.mailer.failing["b@example.com"] = true

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err == nil {
		t.Fatal("expected an error when nothing could be delivered")
	}
	if result == nil || result.Failed != 2 {
		t.Fatalf("the failed result must still be returned, got %+v", result)
	}
	// The attempt is still on record.
	if len(f.receipts.receipts) != 1 {
		t.Errorf("failed fan-out must still leave a receipt, got %d", len(f.receipts.receipts))
	}
}

func TestNotifyService_Announce_SecondAnnounceRejected(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("a@example.com", true)

	if _, err := f.svc.Announce(context.Background(), notice("post_1")); err != nil {
		t.Fatalf("first announce failed: %v", err)
	}
	_, err := f.svc.Announce(context.Background(), notice("post_1"))
	if !errors.Is(err, domain.ErrAlreadyAnnounced) {
		t.Fatalf("expected ErrAlreadyAnnounced, got %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Errorf("second announce must not send again, got %d sends", len(f.mailer.sent))
	}
}

func TestNotifyService_Announce_GuardCheckFailure_Proceeds(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("a@example.com", true)
	f.guard.checkErr = errors.New("redis down")

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err != nil {
		t.Fatalf("a broken guard must not block the announcement, got %v", err)
	}
	if result.Delivered != 1 {
		t.Errorf("expected 1 delivery, got %d", result.Delivered)
	}
}

func TestNotifyService_Announce_ReceiptWriteFailure_Surfaces(t *testing.T) {
	f := newNotifyFixture()
	f.addSubscriber("a@example.com", true)
	f.receipts.createErr = errors.New("db unavailable")

	_, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err == nil {
		t.Fatal("a lost receipt must surface as an error")
	}
}

func TestNotifyService_Announce_ManyRecipients(t *testing.T) {
	f := newNotifyFixture()
	for i := 0; i < 50; i++ {
		f.addSubscriber(fmt.Sprintf("s%02d@example.com", i), true)
	}

	result, err := f.svc.Announce(context.Background(), notice("post_1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Delivered != 50 {
		t.Errorf("expected 50 deliveries, got %d", result.Delivered)
	}
	if len(f.mailer.sent) != 50 {
		t.Errorf("expected 50 sends, got %d", len(f.mailer.sent))
	}
}
