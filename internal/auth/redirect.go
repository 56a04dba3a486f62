package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tablehub/backend/internal/config"
)

// ErrInvalidRedirect marks a post-auth redirect URL rejected by the
// allow-policy. Wrapped errors carry the specific reason.
var ErrInvalidRedirect = errors.New("invalid redirect")

// ValidateRedirect checks a requested post-auth redirect URL against the
// configured allow-policy and returns it unchanged when permitted.
//
// The URL must be absolute. Local hosts (localhost, 127.0.0.1) are accepted
// with any scheme; everything else must use https and either match an
// allowed origin or end with a trusted hostname suffix.
func ValidateRedirect(cfg *config.Config, redirectTo string) (string, error) {
	parsed, err := url.Parse(redirectTo)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidRedirect, redirectTo)
	}

	hostname := parsed.Hostname()
	isLocal := hostname == "localhost" || hostname == "127.0.0.1"

	if !isLocal && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q must use https", ErrInvalidRedirect, redirectTo)
	}

	if isLocal {
		return redirectTo, nil
	}

	origin := parsed.Scheme + "://" + parsed.Host
	if cfg.AllowedOrigins()[origin] {
		return redirectTo, nil
	}

	for _, suffix := range cfg.TrustedSuffixes() {
		if strings.HasSuffix(hostname, suffix) {
			return redirectTo, nil
		}
	}

	return "", fmt.Errorf("%w: origin %s is not allowed", ErrInvalidRedirect, origin)
}
