package service

import "context"

// Notifier delivers a verification link to a user's email address.
// Delivery is best-effort: the auth flows log and swallow failures, so an
// account stays usable even when the first email never arrives.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, email, name, link string) error
}
