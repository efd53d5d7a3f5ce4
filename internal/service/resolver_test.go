package service

import "testing"

func TestIsUUID(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2a3a8c9e-1f44-4d7b-9b1a-0c8e2f6d5a41", true},
		{"00000000-0000-0000-0000-000000000000", true},
		{"2A3A8C9E-1F44-4D7B-9B1A-0C8E2F6D5A41", false},
		{"2a3a8c9e1f444d7b9b1a0c8e2f6d5a41", false},
		{"2a3a8c9e-1f44-4d7b-9b1a-0c8e2f6d5a4", false},
		{"report.pdf", false},
		{"", false},
		{"2a3a8c9e-1f44-4d7b-9b1a-0c8e2f6d5a41-report.pdf", false},
	}
	for _, tc := range cases {
		if got := IsUUID(tc.in); got != tc.want {
			t.Errorf("IsUUID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
