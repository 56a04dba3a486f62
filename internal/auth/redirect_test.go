package auth

import (
	"errors"
	"testing"

	"tablehub/backend/internal/config"
)

func TestValidateRedirect(t *testing.T) {
	cfg := &config.Config{
		SiteOrigin:              "https://cards.example.com",
		AllowedRedirectOrigins:  "https://staging.example.com",
		TrustedRedirectSuffixes: ".preview.example.dev",
	}

	tests := []struct {
		name       string
		cfg        *config.Config
		redirectTo string
		wantErr    bool
	}{
		{"site origin", cfg, "https://cards.example.com/after-login", false},
		{"allow-listed origin", cfg, "https://staging.example.com/x", false},
		{"trusted suffix", cfg, "https://pr-42.preview.example.dev/x", false},
		{"localhost http", cfg, "http://localhost:3000/x", false},
		{"loopback http", cfg, "http://127.0.0.1:5173/", false},
		{"unknown origin", cfg, "https://evil.example/x", true},
		{"http on remote host", cfg, "http://cards.example.com/x", true},
		{"relative path", cfg, "/foo", true},
		{"relative path without site origin", &config.Config{}, "/foo", true},
		{"garbage", cfg, "::::", true},
		{"empty", cfg, "", true},
		{"port changes the origin", cfg, "https://cards.example.com:8443/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRedirect(tt.cfg, tt.redirectTo)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateRedirect(%q) = %q, want error", tt.redirectTo, got)
				}
				if !errors.Is(err, ErrInvalidRedirect) {
					t.Errorf("error %v is not ErrInvalidRedirect", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateRedirect(%q) returned error: %v", tt.redirectTo, err)
			}
			if got != tt.redirectTo {
				t.Errorf("ValidateRedirect(%q) = %q, want the input back", tt.redirectTo, got)
			}
		})
	}
}
