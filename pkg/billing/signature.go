package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Signature format: HMAC-SHA256(secret, timestamp + "." + payload),
// hex encoded. Binding the timestamp into the digest prevents replay
// of captured payloads outside the acceptance window.

const (
	headerSignature = "X-Webhook-Signature"
	headerTimestamp = "X-Webhook-Timestamp"
)

// SignPayload signs a webhook payload for delivery. Used by tests and
// by internal event forwarding.
func SignPayload(secret string, payload []byte, now time.Time) (signature, timestamp string) {
	ts := strconv.FormatInt(now.Unix(), 10)
	return computeSignature(secret, payload, ts), ts
}

// VerifySignature checks a webhook signature and its timestamp window.
// Comparison is constant time.
func VerifySignature(secret string, payload []byte, signature, timestamp string, maxAge time.Duration) error {
	if signature == "" || timestamp == "" {
		return fmt.Errorf("%w: missing signature headers", ErrSignatureInvalid)
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp", ErrSignatureInvalid)
	}
	if maxAge > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > maxAge || age < -maxAge {
			return fmt.Errorf("%w: timestamp outside acceptance window", ErrSignatureInvalid)
		}
	}

	expected := computeSignature(secret, payload, timestamp)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureInvalid
	}
	return nil
}

func computeSignature(secret string, payload []byte, timestamp string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(timestamp))
	h.Write([]byte("."))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
