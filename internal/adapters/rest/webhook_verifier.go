package rest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// webhookTolerance bounds how old or how far ahead a signed webhook
// timestamp may be.
const webhookTolerance = 5 * time.Minute

// WebhookVerifier checks identity provider webhook signatures. The
// provider signs "id.timestamp.payload" with HMAC-SHA256 and sends the
// result base64-encoded in a space-separated "v1,<sig>" header list.
type WebhookVerifier struct {
	key []byte
	now func() time.Time
}

// NewWebhookVerifier builds a verifier from the signing secret. The
// secret is the base64 part after the "whsec_" prefix.
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	encoded := strings.TrimPrefix(secret, "whsec_")
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return &WebhookVerifier{key: key, now: time.Now}, nil
}

// Verify checks the message signature and timestamp. Any failure means
// the payload must not be processed.
func (v *WebhookVerifier) Verify(msgID, timestamp, signatures string, payload []byte) error {
	if msgID == "" || timestamp == "" || signatures == "" {
		return fmt.Errorf("missing webhook signature headers")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %w", err)
	}

	age := v.now().Sub(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return fmt.Errorf("webhook timestamp outside of tolerance")
	}

	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// The header may carry several versioned signatures. Any matching
	// v1 signature accepts the message.
	for _, sig := range strings.Split(signatures, " ") {
		version, value, found := strings.Cut(sig, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(value), []byte(expected)) {
			return nil
		}
	}
	return fmt.Errorf("no matching webhook signature")
}
