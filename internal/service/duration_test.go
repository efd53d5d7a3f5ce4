package service

import (
	"testing"
	"time"
)

func TestNormalizeDuration(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", DurationUnlimited, false},
		{"unlimited", DurationUnlimited, false},
		{"1h", "1h", false},
		{"24h", "24h", false},
		{"7d", "7d", false},
		{"2h", "", true},
		{"forever", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeDuration(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeDuration(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeDuration(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeDuration(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpiryFor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := ExpiryFor(DurationUnlimited, now); got != nil {
		t.Errorf("unlimited duration should have nil expiry, got %v", got)
	}
	if got := ExpiryFor(DurationHour, now); got == nil || !got.Equal(now.Add(time.Hour)) {
		t.Errorf("1h expiry = %v, want %v", got, now.Add(time.Hour))
	}
	if got := ExpiryFor(DurationWeek, now); got == nil || !got.Equal(now.Add(7*24*time.Hour)) {
		t.Errorf("7d expiry = %v, want %v", got, now.Add(7*24*time.Hour))
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if IsExpired(nil, now) {
		t.Error("nil expiry must never expire")
	}
	if !IsExpired(&past, now) {
		t.Error("past expiry should be expired")
	}
	if !IsExpired(&now, now) {
		t.Error("expiry exactly now should count as expired")
	}
	if IsExpired(&future, now) {
		t.Error("future expiry should not be expired")
	}
}
