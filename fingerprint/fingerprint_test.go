// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unchanged", "abc123", "abc123"},
		{"trims", "  abc123\n", "abc123"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Overlong(t *testing.T) {
	long := strings.Repeat("x", MaxLength+1)

	got := Normalize(long)
	if len(got) > MaxLength {
		t.Errorf("Normalize() length = %d, want <= %d", len(got), MaxLength)
	}
	if !strings.HasPrefix(got, "sha256-") {
		t.Errorf("Normalize() = %q, want sha256- prefix", got)
	}
	if Normalize(long) != got {
		t.Error("Normalize() should be deterministic")
	}
	if Normalize(long+"y") == got {
		t.Error("different inputs should not collide")
	}
}

func TestDerive(t *testing.T) {
	fp1 := Derive("Mozilla/5.0", "10.0.0.1", "salt")
	fp2 := Derive("Mozilla/5.0", "10.0.0.1", "salt")

	if fp1 != fp2 {
		t.Errorf("Derive() not deterministic: %s != %s", fp1, fp2)
	}
	if !IsDerived(fp1) {
		t.Errorf("Derive() = %q, want %q prefix", fp1, ServerPrefix)
	}
	if strings.Contains(fp1, "10.0.0.1") {
		t.Error("Derive() should not contain the address")
	}

	tests := []struct {
		name         string
		ua, ip, salt string
	}{
		{"different ip", "Mozilla/5.0", "10.0.0.2", "salt"},
		{"different agent", "curl/8.0", "10.0.0.1", "salt"},
		{"different salt", "Mozilla/5.0", "10.0.0.1", "other"},
		{"shifted boundary", "Mozilla/5.010.0.0.1", "", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.ua, tt.ip, tt.salt); got == fp1 {
				t.Errorf("Derive() collided with base fingerprint: %s", got)
			}
		})
	}
}

func TestIsDerived(t *testing.T) {
	if IsDerived("client-abc") {
		t.Error("IsDerived() should be false for client fingerprints")
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"localhost", "127.0.0.1", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			// Should be 16 hex chars (8 bytes)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			if hash2 := HashIP(tt.ip, tt.salt); hash != hash2 {
				t.Errorf("HashIP() not deterministic: %s != %s", hash, hash2)
			}
			if strings.Contains(hash, tt.ip) {
				t.Error("HashIP() should not contain original IP")
			}
		})
	}

	if HashIP("", "salt") != "" {
		t.Error("HashIP() of empty address should be empty")
	}
	if HashIP("192.168.1.1", "a") == HashIP("192.168.1.1", "b") {
		t.Error("HashIP() should depend on salt")
	}
}
