// Package view turns records into display-ready fragments: badges,
// formatted money and dates. Everything here is a pure function of its
// inputs; nothing fetches, caches, or mutates.
package view

import "time"

// Badge labels shown next to a ban entry.
const (
	BadgeActive  = "Active"
	BadgeExpired = "Expired"
)

// BanBadge derives the expiry badge from (expires_at, now). A ban with
// no expiry gets no badge at all. This is a point-in-time comparison;
// nothing re-evaluates it when the ban later crosses its expiry.
func BanBadge(expiresAt *time.Time, now time.Time) string {
	if expiresAt == nil || expiresAt.IsZero() {
		return ""
	}
	if expiresAt.After(now) {
		return BadgeActive
	}
	return BadgeExpired
}

// BanExpired reports whether a ban is past its expiry. Absent expiry
// means permanent, which is never "expired".
func BanExpired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt != nil && !expiresAt.IsZero() && !expiresAt.After(now)
}

// BroadcastBadgeColor maps a delivery status to the badge color token
// the dashboard renders. Unknown statuses fall back to neutral.
func BroadcastBadgeColor(status string) string {
	switch status {
	case "scheduled":
		return "blue"
	case "sending":
		return "yellow"
	case "completed":
		return "green"
	case "failed":
		return "red"
	default:
		return "gray"
	}
}

// PaymentBadgeColor maps a payment status to its badge color token.
func PaymentBadgeColor(status string) string {
	switch status {
	case "pending":
		return "yellow"
	case "approved":
		return "green"
	case "rejected":
		return "red"
	default:
		return "gray"
	}
}

// FormatDate renders timestamps the way every panel shows them.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}
