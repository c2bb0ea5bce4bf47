package view

import (
	"testing"
	"time"
)

func TestBanBadge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      string
	}{
		{"permanent ban has no badge", nil, ""},
		{"zero expiry treated as permanent", &time.Time{}, ""},
		{"future expiry is active", &future, BadgeActive},
		{"past expiry is expired", &past, BadgeExpired},
		{"expiry exactly now is expired", &now, BadgeExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BanBadge(tt.expiresAt, now); got != tt.want {
				t.Errorf("BanBadge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBanExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if BanExpired(nil, now) {
		t.Error("permanent ban must never be expired")
	}
	if BanExpired(&future, now) {
		t.Error("future expiry must not be expired")
	}
	if !BanExpired(&past, now) {
		t.Error("past expiry must be expired")
	}
}

func TestBroadcastBadgeColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"scheduled", "blue"},
		{"sending", "yellow"},
		{"completed", "green"},
		{"failed", "red"},
		{"draft", "gray"},
		{"", "gray"},
	}
	for _, tt := range tests {
		if got := BroadcastBadgeColor(tt.status); got != tt.want {
			t.Errorf("BroadcastBadgeColor(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestPaymentBadgeColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"pending", "yellow"},
		{"approved", "green"},
		{"rejected", "red"},
		{"refunded", "gray"},
	}
	for _, tt := range tests {
		if got := PaymentBadgeColor(tt.status); got != tt.want {
			t.Errorf("PaymentBadgeColor(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 2, 7, 9, 5, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "Feb 7, 2026 09:05" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{9.99, "USD", "$9.99"},
		{24.5, "EUR", "€24.50"},
		{150000, "IDR", "Rp150000.00"},
		{100, "RUB", "₽100.00"},
		{42, "GBP", "GBP 42.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestPromoPrice(t *testing.T) {
	final := 7.5
	tests := []struct {
		name         string
		basePrice    float64
		discountType string
		value        float64
		finalAmount  *float64
		want         float64
	}{
		{"server final amount wins over discount math", 100, "percentage", 10, &final, 7.5},
		{"percentage fallback", 100, "percentage", 25, nil, 75},
		{"fixed fallback", 20, "fixed", 5, nil, 15},
		{"fixed discount clamped at zero", 3, "fixed", 10, nil, 0},
		{"percentage over 100 clamped at zero", 50, "percentage", 150, nil, 0},
		{"unknown type leaves base price", 30, "bogus", 50, nil, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromoPrice(tt.basePrice, tt.discountType, tt.value, tt.finalAmount)
			if got != tt.want {
				t.Errorf("PromoPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertAppliesRateOnce(t *testing.T) {
	// Discount first, convert once: the converted discounted price.
	discounted := PromoPrice(100, "percentage", 50, nil)
	if got := Convert(discounted, 15000); got != 750000 {
		t.Errorf("Convert() = %v, want 750000", got)
	}
}
