package payment

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionSuccess            TransactionStatus = "SUCCESS"
	TransactionFailed             TransactionStatus = "FAILED"
	TransactionCancelled          TransactionStatus = "CANCELLED"
	TransactionAmountMismatch     TransactionStatus = "AMOUNT_MISMATCH"
	TransactionVerificationFailed TransactionStatus = "VERIFICATION_FAILED"
)

// Transaction is the append-only audit row for one accepted delivery.
type Transaction struct {
	ID                uuid.UUID
	IntentID          uuid.UUID
	GatewayTranID     string
	GatewayValID      string
	DeliveredAmount   string
	Status            TransactionStatus
	Verified          bool
	VerificationNotes string
	RawPayload        map[string]string
	CreatedAt         time.Time
}

func NewTransaction(intentID uuid.UUID, n Notification, status TransactionStatus, verified bool, notes string, now time.Time) Transaction {
	return Transaction{
		ID:                uuid.New(),
		IntentID:          intentID,
		GatewayTranID:     n.TranID,
		GatewayValID:      n.ValID,
		DeliveredAmount:   n.Amount,
		Status:            status,
		Verified:          verified,
		VerificationNotes: notes,
		RawPayload:        n.Raw,
		CreatedAt:         now,
	}
}
