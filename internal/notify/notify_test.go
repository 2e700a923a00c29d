package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"

	"github.com/homeline/homeline-go/internal/logging"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func testNotice() InquiryNotice {
	return InquiryNotice{
		RealtorName:    "Mahdi",
		RealtorEmail:   "mahdi@mahdi.com",
		ListingID:      2,
		ListingAddress: "street 1 - no 2",
		BuyerName:      "Laith",
		BuyerEmail:     "laith@example.com",
		BuyerPhone:     "555 555 5555",
		Message:        "Is it still available?",
	}
}

func TestMailNotifierSends(t *testing.T) {
	fake := &fakeSender{}
	n := &MailNotifier{dialer: fake, from: "no-reply@homeline.local"}

	if err := n.InquiryReceived(context.Background(), testNotice()); err != nil {
		t.Fatalf("InquiryReceived() unexpected error: %v", err)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fake.sent))
	}

	m := fake.sent[0]
	if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != "New inquiry about street 1 - no 2" {
		t.Errorf("Subject = %v", got)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Is it still available?") {
		t.Error("message body does not contain the inquiry text")
	}
}

func TestMailNotifierWrapsSendError(t *testing.T) {
	boom := errors.New("smtp down")
	n := &MailNotifier{dialer: &fakeSender{err: boom}, from: "no-reply@homeline.local"}

	err := n.InquiryReceived(context.Background(), testNotice())
	if !errors.Is(err, boom) {
		t.Fatalf("InquiryReceived() error = %v, want wrapped %v", err, boom)
	}
}

func TestMailNotifierHonoursCancelledContext(t *testing.T) {
	fake := &fakeSender{}
	n := &MailNotifier{dialer: fake}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.InquiryReceived(ctx, testNotice()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if len(fake.sent) != 0 {
		t.Fatal("no message should be sent after cancellation")
	}
}

func TestLogNotifier(t *testing.T) {
	if err := NewLogNotifier(logging.Discard()).InquiryReceived(context.Background(), testNotice()); err != nil {
		t.Fatalf("InquiryReceived() unexpected error: %v", err)
	}
}
