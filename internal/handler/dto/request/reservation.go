package request

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type OfflinePaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}
