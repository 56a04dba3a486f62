package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tablehub/backend/internal/config"

	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

var httpClient = &http.Client{Timeout: 10 * time.Second}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendMagicLink delivers a sign-in link to the given address. When email
// credentials are not configured the link is logged instead; sign-in must
// keep working in local setups without an email account.
func SendMagicLink(cfg *config.Config, email, link string) error {
	if cfg.ResendAPIKey == "" || cfg.EmailFrom == "" {
		log.Warn().Msg("Skipping email send. Set RESEND_API_KEY and EMAIL_FROM to enable magic links.")
		log.Info().Str("email", email).Str("link", link).Msg("magic link")
		return nil
	}

	payload := resendRequest{
		From:    cfg.EmailFrom,
		To:      []string{email},
		Subject: "Sign in to TableHub",
		HTML:    fmt.Sprintf(`<p>Click <a href="%s">this magic link</a> to sign in.</p>`, link),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}

	log.Info().Str("email", email).Msg("magic link sent")
	return nil
}
