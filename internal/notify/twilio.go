package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioAPIBase = "https://api.twilio.com"

// TwilioNotifier sends SMS through the Twilio Messages API.
type TwilioNotifier struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	httpClient *http.Client
}

// NewTwilioNotifier builds a notifier for the given Twilio credentials.
func NewTwilioNotifier(accountSID, authToken, fromNumber string) (*TwilioNotifier, error) {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil, fmt.Errorf("twilio configuration is incomplete")
	}
	return &TwilioNotifier{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    twilioAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Send posts one message. Any non-2xx response is an error carrying the
// response body, delivery failures are never swallowed here.
func (t *TwilioNotifier) Send(ctx context.Context, toPhone, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("From", t.fromNumber)
	form.Set("To", toPhone)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio SMS failed: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	return nil
}
