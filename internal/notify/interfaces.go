// SPDX-License-Identifier: Apache-2.0

// Package notify defines the outbound user-facing collaborators of the
// sync engine: the system notification surface and the badge/tooltip
// indicator. Both are best-effort, fire-and-forget; the engine never
// fails a cycle because a notification could not be delivered.
package notify

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

// Notifier delivers a human-readable notification to the user.
type Notifier interface {
	// Notify shows a notification with the given title and body.
	Notify(title, body string)
}

// Indicator maintains the persistent alert indicator (badge count and
// hover tooltip) visible between notifications.
type Indicator interface {
	// SetCount sets the aggregate alert count across all tracked budgets.
	// Zero clears the badge.
	SetCount(n int)

	// SetTooltip sets the hover text summarising the current alerts.
	SetTooltip(text string)
}
