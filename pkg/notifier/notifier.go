package notifier

import "context"

// SMSSender delivers short messages to a phone number. Delivery is
// fire-and-forget; no delivery guarantee is modeled.
type SMSSender interface {
	SendOTPSMS(ctx context.Context, phoneNumber, code string) error
}

// EmailSender delivers transactional email. Delivery is fire-and-forget.
type EmailSender interface {
	SendOTPEmail(ctx context.Context, email, code string) error
	SendMagicLinkEmail(ctx context.Context, email, link string) error
}
