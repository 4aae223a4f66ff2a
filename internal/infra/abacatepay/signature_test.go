package abacatepay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"event":"billing.paid"}`)
	secret := "top-secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	validSig := hex.EncodeToString(mac.Sum(nil))

	if !VerifySignature(payload, validSig, secret) {
		t.Fatalf("expected signature to validate")
	}
	if VerifySignature(payload, "deadbeef", secret) {
		t.Fatalf("expected invalid signature to fail")
	}
	if VerifySignature(payload, "", secret) {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifySignature(payload, validSig, "") {
		t.Fatalf("expected empty secret to fail")
	}
	if VerifySignature(payload, validSig, "other-secret") {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestVerifySignature_DetectsTampering(t *testing.T) {
	secret := "top-secret"
	original := []byte(`{"event":"billing.paid","data":{"pixQrCode":{"metadata":{"externalId":"u1","plan":"PREMIUM"}}}}`)
	sig := Sign(original, secret)

	for i := range original {
		tampered := append([]byte(nil), original...)
		tampered[i] ^= 0x01
		if VerifySignature(tampered, sig, secret) {
			t.Fatalf("tampered byte %d still verified", i)
		}
	}
	if VerifySignature(append(original, ' '), sig, secret) {
		t.Fatalf("appended whitespace still verified")
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for _, s := range []string{"PAID", "paid", "EXPIRED", "CANCELLED", "REFUNDED"} {
		if !IsTerminalStatus(s) {
			t.Fatalf("expected %q to be terminal", s)
		}
	}
	if IsTerminalStatus("PENDING") {
		t.Fatalf("expected PENDING to be non-terminal")
	}
}
