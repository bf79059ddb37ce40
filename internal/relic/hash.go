package relic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration without colliding with old relics.
const (
	DomainLayout = "reliquary/layout/v1"
	DomainRelic  = "reliquary/relic/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// LayoutFingerprint computes the content-addressed ID of a layout map.
// Stable across runs for a fixed seed: the layout holds only seed-derived
// template attributes, never per-frame state.
func LayoutFingerprint(layout map[string]any) (string, error) {
	canonical, err := MarshalCanonical(layout)
	if err != nil {
		return "", fmt.Errorf("relic: layout fingerprint: %w", err)
	}
	return hashWithDomain(DomainLayout, canonical), nil
}

// Fingerprint computes the content-addressed ID of a full relic manifest
// body (layout fingerprint + edition + frozen vector + timestamp).
func Fingerprint(body map[string]any) (string, error) {
	canonical, err := MarshalCanonical(body)
	if err != nil {
		return "", fmt.Errorf("relic: fingerprint: %w", err)
	}
	return hashWithDomain(DomainRelic, canonical), nil
}
