package payment

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed payment notification")

type DeliveredStatus string

const (
	DeliveredValid     DeliveredStatus = "VALID"
	DeliveredValidated DeliveredStatus = "VALIDATED"
	DeliveredFailed    DeliveredStatus = "FAILED"
	DeliveredCancelled DeliveredStatus = "CANCELLED"
)

func (s DeliveredStatus) IsKnown() bool {
	switch s {
	case DeliveredValid, DeliveredValidated, DeliveredFailed, DeliveredCancelled:
		return true
	default:
		return false
	}
}

func (s DeliveredStatus) IsSuccess() bool {
	return s == DeliveredValid || s == DeliveredValidated
}

// TransactionStatus maps a non-success delivery onto its audit status.
func (s DeliveredStatus) TransactionStatus() TransactionStatus {
	switch s {
	case DeliveredValid, DeliveredValidated:
		return TransactionSuccess
	case DeliveredCancelled:
		return TransactionCancelled
	default:
		return TransactionFailed
	}
}

const (
	FieldTranID     = "tran_id"
	FieldValID      = "val_id"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldVerifySign = "verify_sign"
	FieldVerifyKey  = "verify_key"
	FieldIntentRef  = "value_a"
	FieldCurrency   = "currency"
)

var requiredFields = []string{FieldTranID, FieldValID, FieldAmount, FieldStatus, FieldVerifySign, FieldVerifyKey}

// Notification is a structurally valid gateway delivery.
type Notification struct {
	TranID    string
	ValID     string
	Amount    string
	Status    DeliveredStatus
	IntentRef string
	Currency  string
	Raw       map[string]string
}

func ParseNotification(fields map[string]string) (Notification, error) {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(fields[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return Notification{}, fmt.Errorf("%w: missing %s", ErrMalformedPayload, strings.Join(missing, ","))
	}

	status := DeliveredStatus(strings.ToUpper(strings.TrimSpace(fields[FieldStatus])))
	if !status.IsKnown() {
		return Notification{}, fmt.Errorf("%w: unknown status %q", ErrMalformedPayload, fields[FieldStatus])
	}

	return Notification{
		TranID:    strings.TrimSpace(fields[FieldTranID]),
		ValID:     strings.TrimSpace(fields[FieldValID]),
		Amount:    strings.TrimSpace(fields[FieldAmount]),
		Status:    status,
		IntentRef: strings.TrimSpace(fields[FieldIntentRef]),
		Currency:  fields[FieldCurrency],
		Raw:       maps.Clone(fields),
	}, nil
}
