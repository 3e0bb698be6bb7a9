//go:build unit || e2e

package builder

import (
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/payment"

	"github.com/google/uuid"
)

type WebhookBuilder struct {
	Secret    string
	TranID    string
	ValID     string
	Amount    string
	Status    string
	IntentRef string
	VerifyKey string
}

func NewWebhookBuilder(secret string) *WebhookBuilder {
	return &WebhookBuilder{
		Secret:    secret,
		TranID:    "SZ" + uuid.NewString(),
		ValID:     "VAL-" + uuid.NewString()[:8],
		Amount:    "100.00",
		Status:    string(payment.DeliveredValid),
		VerifyKey: "tran_id,val_id,amount,status,value_a",
	}
}

func (b *WebhookBuilder) With(mutate func(*WebhookBuilder)) *WebhookBuilder {
	mutate(b)
	return b
}

func (b *WebhookBuilder) WithAmount(amount string) *WebhookBuilder {
	b.Amount = amount
	return b
}

func (b *WebhookBuilder) WithStatus(status payment.DeliveredStatus) *WebhookBuilder {
	b.Status = string(status)
	return b
}

// ForIntent correlates the delivery to an existing intent.
func (b *WebhookBuilder) ForIntent(i *payment.Intent) *WebhookBuilder {
	b.TranID = i.GatewayTranID
	b.IntentRef = i.ID.String()
	return b
}

// Build returns the signed form fields as the gateway would post them.
func (b *WebhookBuilder) Build() map[string]string {
	fields := map[string]string{
		payment.FieldTranID:    b.TranID,
		payment.FieldValID:     b.ValID,
		payment.FieldAmount:    b.Amount,
		payment.FieldStatus:    b.Status,
		payment.FieldIntentRef: b.IntentRef,
		payment.FieldCurrency:  "BDT",
		payment.FieldVerifyKey: b.VerifyKey,
	}
	signer := payment.NewSigner(b.Secret)
	fields[payment.FieldVerifySign] = signer.Sign(fields, payment.SignedKeys(b.VerifyKey))
	return fields
}
