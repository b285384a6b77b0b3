package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/accadaniel/PriceSpy/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitResendSend(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody), "request body should be JSON")
		wrt.Header().Set("Content-Type", "application/json")
		wrt.Write([]byte(`{"id": "msg-123"}`))
	}))
	t.Cleanup(srv.Close)

	notif := notifier.NewResendNotifier(srv.Client(), "re-key", "alerts@example.com", notifier.WithResendBaseURL(srv.URL))
	deliveryID, err := notif.Send(context.TODO(), notifier.Alert{
		To:           "user@example.com",
		ProductName:  "Acme Widget Pro",
		CurrentPrice: 89.99,
		TargetPrice:  100,
		Currency:     "EUR",
		Retailer:     "ShopA",
		URL:          "https://a.example/p",
	})

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, "msg-123", deliveryID, "should return the delivery ID")
	assert.Equal(t, "Bearer re-key", gotAuth, "should authenticate with the api key")
	assert.Equal(t, "alerts@example.com", gotBody["from"], "should send from the configured address")
	assert.Equal(t, []any{"user@example.com"}, gotBody["to"], "should address the product owner")
	assert.Equal(t, "Price Drop Alert: Acme Widget Pro now 89.99 EUR!", gotBody["subject"], "should include price in subject")
	assert.Contains(t, gotBody["html"], "https://a.example/p", "should link the offer")
	assert.Contains(t, gotBody["text"], "ShopA", "plaintext body should name the retailer")
}

func TestUnitResendSendMissingAPIKey(t *testing.T) {
	notif := notifier.NewResendNotifier(http.DefaultClient, "", "alerts@example.com")

	_, err := notif.Send(context.TODO(), notifier.Alert{To: "user@example.com"})

	require.ErrorIs(t, err, notifier.ErrMissingAPIKey, "missing key must surface as a configuration error")
}

func TestUnitResendSendStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.WriteHeader(http.StatusUnprocessableEntity)
	}))
	t.Cleanup(srv.Close)

	notif := notifier.NewResendNotifier(srv.Client(), "re-key", "alerts@example.com", notifier.WithResendBaseURL(srv.URL))
	deliveryID, err := notif.Send(context.TODO(), notifier.Alert{To: "user@example.com"})

	require.ErrorIs(t, err, notifier.ErrStatusNotOK, "should return correct error")
	assert.Empty(t, deliveryID, "failed delivery must not yield an ID")
}
