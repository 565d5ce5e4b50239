package rest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

func testWebhookSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString(testSigningKey)
}

func signTestPayload(key []byte, msgID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookVerifierAcceptsValidSignature(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	payload := []byte(`{"type":"user.created"}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signTestPayload(testSigningKey, "msg_1", ts, payload)

	assert.NoError(t, verifier.Verify("msg_1", ts, sig, payload))
}

func TestWebhookVerifierAcceptsAnyMatchingSignatureInList(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	payload := []byte(`{"type":"user.created"}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	good := signTestPayload(testSigningKey, "msg_1", ts, payload)
	sigs := "v1,bm90LXRoZS1yaWdodC1zaWduYXR1cmU= " + good

	assert.NoError(t, verifier.Verify("msg_1", ts, sigs, payload))
}

func TestWebhookVerifierRejectsTamperedPayload(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signTestPayload(testSigningKey, "msg_1", ts, []byte(`{"type":"user.created"}`))

	assert.Error(t, verifier.Verify("msg_1", ts, sig, []byte(`{"type":"user.deleted"}`)))
}

func TestWebhookVerifierRejectsWrongKey(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	payload := []byte(`{}`)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := signTestPayload([]byte("another-key-another-key-another!"), "msg_1", ts, payload)

	assert.Error(t, verifier.Verify("msg_1", ts, sig, payload))
}

func TestWebhookVerifierRejectsStaleTimestamp(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	payload := []byte(`{}`)
	stale := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
	sig := signTestPayload(testSigningKey, "msg_1", stale, payload)

	assert.Error(t, verifier.Verify("msg_1", stale, sig, payload))
}

func TestWebhookVerifierRejectsFutureTimestamp(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	payload := []byte(`{}`)
	future := strconv.FormatInt(time.Now().Add(10*time.Minute).Unix(), 10)
	sig := signTestPayload(testSigningKey, "msg_1", future, payload)

	assert.Error(t, verifier.Verify("msg_1", future, sig, payload))
}

func TestWebhookVerifierRejectsMissingHeaders(t *testing.T) {
	verifier, err := NewWebhookVerifier(testWebhookSecret())
	require.NoError(t, err)

	assert.Error(t, verifier.Verify("", "123", "v1,abc", nil))
	assert.Error(t, verifier.Verify("msg_1", "", "v1,abc", nil))
	assert.Error(t, verifier.Verify("msg_1", "123", "", nil))
}

func TestNewWebhookVerifierRejectsBadSecret(t *testing.T) {
	_, err := NewWebhookVerifier("whsec_!!!not-base64!!!")
	assert.Error(t, err)
}
