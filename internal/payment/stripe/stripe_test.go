package stripe

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestConfigNormalizeAndValidate(t *testing.T) {
	cfg := &Config{
		SecretKey:     " sk_test_123 ",
		WebhookSecret: " whsec_123 ",
		SuccessURL:    "https://shop.example.com/checkout/success",
		CancelURL:     "https://shop.example.com/checkout/cancel",
	}
	cfg.Normalize()
	if cfg.SecretKey != "sk_test_123" {
		t.Fatalf("unexpected secret key: %s", cfg.SecretKey)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected default api base url: %s", cfg.APIBaseURL)
	}
	if cfg.WebhookToleranceSeconds != defaultWebhookToleranceS {
		t.Fatalf("unexpected tolerance: %d", cfg.WebhookToleranceSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
}

func TestValidateRejectsMissingSecrets(t *testing.T) {
	cfg := &Config{
		SuccessURL: "https://shop.example.com/checkout/success",
		CancelURL:  "https://shop.example.com/checkout/cancel",
	}
	cfg.Normalize()
	if err := cfg.Validate(); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid, got %v", err)
	}
}

func TestVerifyAndParseWebhookCheckoutCompleted(t *testing.T) {
	now := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object":         "checkout.session",
				"id":             "cs_test_123",
				"payment_status": "paid",
				"currency":       "aud",
				"amount_total":   129900,
				"created":        now.Unix(),
				"metadata": map[string]interface{}{
					"payment_id": "1001",
					"order_no":   "JS20260101120000123456",
				},
			},
		},
	}
	body, _ := json.Marshal(payload)
	sig := computeSignature(cfg.WebhookSecret, now.Unix(), body)

	result, err := VerifyAndParseWebhook(cfg, "t=1760000000,v1="+sig, body, now)
	if err != nil {
		t.Fatalf("verify and parse webhook failed: %v", err)
	}
	if result.EventType != "checkout.session.completed" {
		t.Fatalf("unexpected event type: %s", result.EventType)
	}
	if result.PaymentID != 1001 {
		t.Fatalf("unexpected payment id: %d", result.PaymentID)
	}
	if result.OrderNo != "JS20260101120000123456" {
		t.Fatalf("unexpected order no: %s", result.OrderNo)
	}
	if result.ProviderRef != "cs_test_123" {
		t.Fatalf("unexpected provider ref: %s", result.ProviderRef)
	}
	if result.Status != StatusSucceeded {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.Amount != "1299.00" {
		t.Fatalf("unexpected amount: %s", result.Amount)
	}
}

func TestVerifyAndParseWebhookInvalidSignature(t *testing.T) {
	now := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	payload := map[string]interface{}{
		"id":   "evt_test_1",
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object": "checkout.session",
				"id":     "cs_test_123",
			},
		},
	}
	body, _ := json.Marshal(payload)

	_, err := VerifyAndParseWebhook(cfg, "t=1760000000,v1=invalid-signature", body, now)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature error, got %v", err)
	}
}

func TestVerifyAndParseWebhookStaleTimestamp(t *testing.T) {
	eventTime := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	body := []byte(`{"id":"evt_test_1","type":"checkout.session.completed","data":{"object":{"object":"checkout.session","id":"cs_test_123"}}}`)
	sig := computeSignature(cfg.WebhookSecret, eventTime.Unix(), body)

	_, err := VerifyAndParseWebhook(cfg, "t=1760000000,v1="+sig, body, eventTime.Add(10*time.Minute))
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected tolerance error, got %v", err)
	}
}

func TestVerifyAndParseWebhookDispute(t *testing.T) {
	now := time.Unix(1760000000, 0)
	cfg := &Config{
		WebhookSecret:           "whsec_test_abc",
		WebhookToleranceSeconds: 300,
	}
	payload := map[string]interface{}{
		"id":   "evt_test_2",
		"type": "charge.dispute.created",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"object":         "dispute",
				"id":             "dp_test_1",
				"payment_intent": "pi_test_9",
				"reason":         "fraudulent",
				"created":        now.Unix(),
			},
		},
	}
	body, _ := json.Marshal(payload)
	sig := computeSignature(cfg.WebhookSecret, now.Unix(), body)

	result, err := VerifyAndParseWebhook(cfg, "t=1760000000,v1="+sig, body, now)
	if err != nil {
		t.Fatalf("verify and parse webhook failed: %v", err)
	}
	if result.Status != StatusDisputed {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.ProviderRef != "pi_test_9" {
		t.Fatalf("unexpected provider ref: %s", result.ProviderRef)
	}
	if result.FailureReason != "fraudulent" {
		t.Fatalf("unexpected failure reason: %s", result.FailureReason)
	}
}

func TestMapEventTypeStatus(t *testing.T) {
	if got, _ := mapEventTypeStatus("payment_intent.succeeded"); got != StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", got)
	}
	if got, _ := mapEventTypeStatus("payment_intent.payment_failed"); got != StatusFailed {
		t.Fatalf("expected failed, got %s", got)
	}
	if got, _ := mapEventTypeStatus("checkout.session.expired"); got != StatusExpired {
		t.Fatalf("expected expired, got %s", got)
	}
	if _, ok := mapEventTypeStatus("invoice.created"); ok {
		t.Fatalf("expected unmapped event type")
	}
}

func TestMinorAmountConversion(t *testing.T) {
	minor, err := toMinorAmount("1299.00", "AUD")
	if err != nil {
		t.Fatalf("to minor amount failed: %v", err)
	}
	if minor != 129900 {
		t.Fatalf("unexpected minor amount: %d", minor)
	}
	minor, err = toMinorAmount("500", "JPY")
	if err != nil {
		t.Fatalf("to minor amount failed: %v", err)
	}
	if minor != 500 {
		t.Fatalf("unexpected zero-decimal minor amount: %d", minor)
	}
	if got := fromMinorAmount(129900, "AUD"); got != "1299.00" {
		t.Fatalf("unexpected major amount: %s", got)
	}
	if _, err := toMinorAmount("0", "AUD"); err == nil {
		t.Fatalf("expected error for zero amount")
	}
}
