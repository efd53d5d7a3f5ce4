package utils

import (
	"strings"
	"testing"
)

func TestGenerateApiKey(t *testing.T) {
	key, err := GenerateApiKey()
	if err != nil {
		t.Fatalf("GenerateApiKey: %v", err)
	}
	if !strings.HasPrefix(key, ApiKeyPrefix) {
		t.Errorf("key %q missing %q prefix", key, ApiKeyPrefix)
	}
	if !IsApiKey(key) {
		t.Errorf("IsApiKey(%q) = false", key)
	}

	other, err := GenerateApiKey()
	if err != nil {
		t.Fatalf("GenerateApiKey: %v", err)
	}
	if key == other {
		t.Error("two generated keys must differ")
	}
}

func TestKeyDisplayPrefix(t *testing.T) {
	got := KeyDisplayPrefix("fv-abcdefghijklmnopqrstuvwxyz")
	if got != "fv-abcd...wxyz" {
		t.Errorf("KeyDisplayPrefix = %q, want fv-abcd...wxyz", got)
	}
	if KeyDisplayPrefix("fv-short") != "fv-short" {
		t.Errorf("short keys should be shown as is")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	rawKey, err := GenerateApiKey()
	if err != nil {
		t.Fatalf("GenerateApiKey: %v", err)
	}

	stored, err := EncryptApiKey(rawKey)
	if err != nil {
		t.Fatalf("EncryptApiKey: %v", err)
	}
	if !strings.Contains(stored, ":") {
		t.Fatalf("stored form %q missing iv separator", stored)
	}
	if strings.Contains(stored, rawKey) {
		t.Error("stored form must not contain the raw key")
	}

	decrypted, err := DecryptApiKey(stored)
	if err != nil {
		t.Fatalf("DecryptApiKey: %v", err)
	}
	if decrypted != rawKey {
		t.Errorf("round trip = %q, want %q", decrypted, rawKey)
	}
}

func TestEncryptApiKeyIsNondeterministic(t *testing.T) {
	first, err := EncryptApiKey("fv-same-key")
	if err != nil {
		t.Fatalf("EncryptApiKey: %v", err)
	}
	second, err := EncryptApiKey("fv-same-key")
	if err != nil {
		t.Fatalf("EncryptApiKey: %v", err)
	}
	if first == second {
		t.Error("random IV should make ciphertexts differ")
	}
}

func TestDecryptApiKeyRejectsMalformed(t *testing.T) {
	for _, stored := range []string{"", "nocolon", "zz:zz", "abcd:1234"} {
		if _, err := DecryptApiKey(stored); err == nil {
			t.Errorf("DecryptApiKey(%q) expected error", stored)
		}
	}
}

func TestKeyDigestIsStable(t *testing.T) {
	a := KeyDigest("fv-some-key")
	b := KeyDigest("fv-some-key")
	c := KeyDigest("fv-other-key")
	if a != b {
		t.Error("digest must be deterministic")
	}
	if a == c {
		t.Error("different keys must digest differently")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer  ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
		{"Bearer", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractBearerToken(tc.header)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ExtractBearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, got, ok, tc.want, tc.ok)
		}
	}
}
