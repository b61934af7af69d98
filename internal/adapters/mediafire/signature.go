package mediafire

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// LoginSignature signs the credential-derived partial string together with
// the application id and key.
func LoginSignature(partial, appID, appKey string) string {
	sum := sha1.Sum([]byte(partial + appID + appKey))
	return hex.EncodeToString(sum[:])
}

// RequestSignature signs one canonical request URL with a v2 token secret.
func RequestSignature(secret uint64, issuedAt, canonicalURL string) string {
	sum := md5.Sum([]byte(strconv.FormatUint(secret%256, 10) + issuedAt + canonicalURL))
	return hex.EncodeToString(sum[:])
}

// CanonicalURL adds sessionToken to params, encodes every pair sorted by name
// and appends the result to base. With forceRelative, a base containing host
// is cut down to the part after host.
func CanonicalURL(base string, params url.Values, sessionToken, host string, forceRelative bool) string {
	if forceRelative && host != "" {
		if idx := strings.Index(base, host); idx >= 0 {
			base = base[idx+len(host):]
		}
	}

	merged := url.Values{}
	if sessionToken != "" {
		merged.Set("session_token", sessionToken)
	}
	for key, values := range params {
		for _, value := range values {
			merged.Add(key, value)
		}
	}

	query := encodeSorted(merged)
	if query == "" {
		return base
	}
	return base + "?" + query
}

// encodeSorted is url.Values.Encode with QueryEscape on both sides and a
// stable order for repeated keys.
func encodeSorted(vals url.Values) string {
	if len(vals) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, key := range keys {
		for _, value := range vals[key] {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(url.QueryEscape(key))
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(value))
		}
	}
	return buf.String()
}
