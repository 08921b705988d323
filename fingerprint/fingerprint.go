// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fingerprint

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// MaxLength bounds the fingerprint used as a store key
const MaxLength = 128

// ServerPrefix marks fingerprints derived on the server
const ServerPrefix = "srv-"

// Normalize trims whitespace. Overlong values are replaced by a digest so
// the key length stays bounded while staying stable per input.
func Normalize(fp string) string {
	fp = strings.TrimSpace(fp)
	if len(fp) <= MaxLength {
		return fp
	}
	sum := sha256.Sum256([]byte(fp))
	return "sha256-" + hex.EncodeToString(sum[:])
}

// Derive builds a fingerprint from request metadata when the client sent
// none. The salt keeps it from being reversed into an address.
func Derive(userAgent, clientIP, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.TrimSpace(userAgent)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(clientIP)))
	sum := h.Sum(nil)
	// URL-safe base64 and trim padding for cleaner keys
	return ServerPrefix + strings.TrimRight(base64.URLEncoding.EncodeToString(sum[:18]), "=")
}

// IsDerived reports whether fp came from Derive.
func IsDerived(fp string) bool {
	return strings.HasPrefix(fp, ServerPrefix)
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	if ip == "" {
		return ""
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits)
	return hex.EncodeToString(sum[:8])
}
