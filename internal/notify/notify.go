// Package notify tells realtors about new inquiries on their listings.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"
)

// InquiryNotice is everything a realtor needs to answer an inquiry.
type InquiryNotice struct {
	RealtorName    string
	RealtorEmail   string
	ListingID      int64
	ListingAddress string
	BuyerName      string
	BuyerEmail     string
	BuyerPhone     string
	Message        string
}

// Notifier delivers inquiry notices.
type Notifier interface {
	InquiryReceived(ctx context.Context, n InquiryNotice) error
}

// LogNotifier only logs notices. It is used when no SMTP host is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) InquiryReceived(_ context.Context, notice InquiryNotice) error {
	n.log.Info("inquiry received",
		"listing_id", notice.ListingID,
		"realtor_email", notice.RealtorEmail,
		"buyer_email", notice.BuyerEmail,
	)
	return nil
}

// sender is the part of *gomail.Dialer MailNotifier uses.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier emails the realtor through an SMTP server.
type MailNotifier struct {
	dialer sender
	from   string
}

func NewMailNotifier(host string, port int, username, password, from string) *MailNotifier {
	return &MailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *MailNotifier) InquiryReceived(ctx context.Context, notice InquiryNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(n.message(notice)); err != nil {
		return fmt.Errorf("send inquiry mail: %w", err)
	}
	return nil
}

func (n *MailNotifier) message(notice InquiryNotice) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", m.FormatAddress(notice.RealtorEmail, notice.RealtorName))
	if notice.BuyerEmail != "" {
		m.SetHeader("Reply-To", m.FormatAddress(notice.BuyerEmail, notice.BuyerName))
	}
	m.SetHeader("Subject", fmt.Sprintf("New inquiry about %s", notice.ListingAddress))
	m.SetBody("text/plain", inquiryBody(notice))
	return m
}

func inquiryBody(n InquiryNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", n.RealtorName)
	fmt.Fprintf(&b, "%s sent an inquiry about your listing at %s (#%d):\n\n", n.BuyerName, n.ListingAddress, n.ListingID)
	fmt.Fprintf(&b, "%s\n\n", n.Message)
	fmt.Fprintf(&b, "Email: %s\nPhone: %s\n", n.BuyerEmail, n.BuyerPhone)
	return b.String()
}
