package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Query parameters that carry tracking state rather than identity.
var trackingParams = map[string]bool{
	"fbclid":   true,
	"gclid":    true,
	"spm":      true,
	"from":     true,
	"share":    true,
	"ref":      true,
	"referrer": true,
}

// CanonicalURL normalizes a URL into a stable identity key: scheme forced
// to https, host lowercased, trailing slash stripped, tracking parameters
// removed and the remaining query order-normalized. Idempotent.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")

	query := u.Query()
	for key := range query {
		if trackingParams[key] || strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
		}
	}
	// url.Values.Encode sorts keys, which gives the order normalization
	u.RawQuery = query.Encode()

	return u.String()
}

// ItemID derives the stable item identifier from a canonical URL.
func ItemID(canonicalURL string) string {
	hash := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(hash[:8])
}
