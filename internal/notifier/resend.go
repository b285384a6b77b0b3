package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
)

const defaultResendURL = "https://api.resend.com/emails"

var alertTemplate = template.Must(template.New("alert").Parse(`<h2>Price Drop Alert!</h2>
<p><strong>{{.ProductName}}</strong> dropped below your target price.</p>
<ul>
  <li>Current price: <strong>{{printf "%.2f" .CurrentPrice}} {{.Currency}}</strong> at {{.Retailer}}</li>
  <li>Your target: {{printf "%.2f" .TargetPrice}} {{.Currency}}</li>
</ul>
{{if .URL}}<p><a href="{{.URL}}">View the offer</a></p>{{end}}
`))

// ResendNotifier delivers alerts as email through the Resend API.
type ResendNotifier struct {
	client  *http.Client
	apiKey  string
	from    string
	baseURL string
}

// ResendOption is custom configuration of ResendNotifier.
type ResendOption func(n *ResendNotifier)

// NewResendNotifier returns new ResendNotifier sending from the `from` address.
func NewResendNotifier(client *http.Client, apiKey, from string, ops ...ResendOption) *ResendNotifier {
	notif := &ResendNotifier{
		client:  client,
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultResendURL,
	}

	for _, op := range ops {
		op(notif)
	}

	return notif
}

// WithResendBaseURL overrides the Resend endpoint.
func WithResendBaseURL(baseURL string) ResendOption {
	return func(n *ResendNotifier) {
		n.baseURL = baseURL
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Send emails the alert and returns the Resend message ID.
func (n *ResendNotifier) Send(ctx context.Context, alert Alert) (string, error) {
	if n.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, alert); err != nil {
		return "", fmt.Errorf("can't render alert email: %w", err)
	}

	payload, err := json.Marshal(resendRequest{
		From:    n.from,
		To:      []string{alert.To},
		Subject: fmt.Sprintf("Price Drop Alert: %s now %.2f %s!", alert.ProductName, alert.CurrentPrice, alert.Currency),
		HTML:    body.String(),
		Text: fmt.Sprintf(
			"Price Drop Alert!\n\n%s is now %.2f %s at %s (your target: %.2f %s).\n%s\n",
			alert.ProductName,
			alert.CurrentPrice,
			alert.Currency,
			alert.Retailer,
			alert.TargetPrice,
			alert.Currency,
			alert.URL,
		),
	})
	if err != nil {
		return "", fmt.Errorf("can't encode alert email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("can't build alert request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("can't send alert email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	var result resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("can't decode alert response: %w", err)
	}

	return result.ID, nil
}
