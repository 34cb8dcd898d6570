// Package device derives stable device fingerprints and display names from the
// network context of a request. The identity resolving party keys device
// trust on these fingerprints.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
)

// Service computes fingerprints. A disabled service returns empty fingerprints,
// which callers treat as "never a known device".
type Service struct {
	enabled bool
}

func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// ComputeFingerprint hashes the User-Agent normalized to major versions, so
// browser auto-updates within a major release keep the same fingerprint.
func (s *Service) ComputeFingerprint(userAgent string) string {
	if !s.enabled {
		return ""
	}
	return hash(normalize(userAgent))
}

// ComputeContextFingerprint binds the fingerprint to the originating client IP
// as well as the normalized User-Agent.
func (s *Service) ComputeContextFingerprint(clientIP, userAgent string) string {
	if !s.enabled {
		return ""
	}
	return hash(strings.TrimSpace(clientIP) + "|" + normalize(userAgent))
}

// CompareFingerprints reports whether two fingerprints match and whether the
// difference should be treated as drift.
func (s *Service) CompareFingerprints(stored, current string) (matched bool, drift bool) {
	if stored == current {
		return true, false
	}
	return false, true
}

// ParseUserAgent returns a short display name such as "Chrome on Windows 10".
func ParseUserAgent(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "Unknown Device"
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	os := ua.OS()
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.Join(strings.Fields(browser+" on "+os), " ")
}

func normalize(userAgent string) string {
	ua := useragent.New(userAgent)
	browser, version := ua.Browser()
	major, _, _ := strings.Cut(version, ".")
	osInfo := ua.OSInfo()
	osMajor, _, _ := strings.Cut(osInfo.Version, ".")
	mobile := "desktop"
	if ua.Mobile() {
		mobile = "mobile"
	}
	return strings.Join([]string{browser, major, osInfo.Name, osMajor, ua.Platform(), mobile}, "|")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
