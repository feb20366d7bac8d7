package service

import "context"

// NotificationService defines the interface for push notification delivery.
// Implementations may be nil-checked by callers; push delivery is optional.
type NotificationService interface {
	// SendTopicNotification sends a push notification to every device
	// subscribed to the given topic.
	SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error
}

// ResetNotifier dispatches password reset instructions to a user. The source
// system delegated this to its platform's email service; implementations here
// may hand off to any delivery channel.
type ResetNotifier interface {
	// DispatchPasswordReset delivers the raw reset token to the given address.
	DispatchPasswordReset(ctx context.Context, email, token string) error
}
