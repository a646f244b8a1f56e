// Package targets classifies and normalizes investigation targets.
package targets

import (
	"net/mail"
	"net/netip"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	"aura/internal/domain"
)

var (
	typePattern   = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)
	phonePattern  = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,20}$`)
	onionPattern  = regexp.MustCompile(`^([a-z2-7]{16}|[a-z2-7]{56})\.onion$`)
	btcPattern    = regexp.MustCompile(`^(bc1[a-z0-9]{25,59}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})$`)
	ethPattern    = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	userPattern   = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)
	imageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".heic"}
)

// ParseType maps a requested target type to the enumeration. An empty value
// asks for detection; a well-formed but unknown value maps to generic.
func ParseType(raw string) (tt domain.TargetType, detect bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true, nil
	}
	raw = strings.ToLower(raw)
	if !typePattern.MatchString(raw) {
		return "", false, domain.Invalid("target_type", "malformed target type")
	}
	tt = domain.TargetType(raw)
	if tt == domain.TargetGeneric || tt.Known() {
		return tt, false, nil
	}
	return domain.TargetGeneric, false, nil
}

// Detect guesses the type of a raw target value.
func Detect(target string) domain.TargetType {
	target = strings.TrimSpace(target)
	lower := strings.ToLower(target)
	switch {
	case target == "":
		return domain.TargetGeneric
	case isEmail(target):
		return domain.TargetEmail
	case isOnion(lower):
		return domain.TargetOnionURL
	case isImageURL(lower):
		return domain.TargetImage
	case isIP(target):
		return domain.TargetIP
	case btcPattern.MatchString(target) || ethPattern.MatchString(target):
		return domain.TargetCryptoAddress
	case isPhone(target):
		return domain.TargetPhone
	case isDomain(lower):
		return domain.TargetDomain
	}
	return domain.TargetUsername
}

// Normalize validates target against tt and returns its canonical form.
func Normalize(tt domain.TargetType, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", domain.Invalid("target", "must not be empty")
	}
	switch tt {
	case domain.TargetEmail:
		if !isEmail(target) {
			return "", domain.Invalid("target", "not an email address")
		}
		return strings.ToLower(target), nil
	case domain.TargetUsername:
		u := strings.TrimPrefix(target, "@")
		if !userPattern.MatchString(u) {
			return "", domain.Invalid("target", "not a username")
		}
		return u, nil
	case domain.TargetDomain:
		host := strings.TrimSuffix(hostOf(strings.ToLower(target)), ".")
		if !isDomain(host) {
			return "", domain.Invalid("target", "not a domain name")
		}
		return host, nil
	case domain.TargetIP:
		addr, err := netip.ParseAddr(target)
		if err != nil {
			return "", domain.Invalid("target", "not an IP address")
		}
		return addr.Unmap().String(), nil
	case domain.TargetPhone:
		if !isPhone(target) {
			return "", domain.Invalid("target", "not a phone number")
		}
		return canonicalPhone(target), nil
	case domain.TargetOnionURL:
		host := hostOf(strings.ToLower(target))
		if !onionPattern.MatchString(host) {
			return "", domain.Invalid("target", "not an onion address")
		}
		return host, nil
	}
	return target, nil
}

func isEmail(s string) bool {
	if strings.ContainsAny(s, " <>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return strings.Contains(s[at+1:], ".")
}

func isOnion(lower string) bool {
	return onionPattern.MatchString(hostOf(lower))
}

func isImageURL(lower string) bool {
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	u, err := url.Parse(lower)
	if err != nil {
		return false
	}
	for _, suf := range imageSuffixes {
		if strings.HasSuffix(u.Path, suf) {
			return true
		}
	}
	return false
}

func isIP(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

func isPhone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	n := len(canonicalPhone(s))
	if strings.HasPrefix(s, "+") {
		n--
	}
	return n >= 7 && n <= 15
}

func canonicalPhone(s string) string {
	var b strings.Builder
	for i, c := range s {
		if (c >= '0' && c <= '9') || (c == '+' && i == 0) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func isDomain(host string) bool {
	if host == "" || len(host) > 253 || !strings.Contains(host, ".") {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, c := range label {
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	suffix, icann := publicsuffix.PublicSuffix(host)
	return icann && suffix != host
}

func hostOf(s string) string {
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			return u.Hostname()
		}
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
