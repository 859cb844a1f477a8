package models

import "time"

type PaymentStatus string

const (
	PaymentStatusAuthorized PaymentStatus = "Authorized"
	PaymentStatusDeclined   PaymentStatus = "Declined"
	PaymentStatusRejected   PaymentStatus = "Rejected"
)

// MaxAmount is the largest accepted amount in minor currency units.
const MaxAmount = 2147483647

// PostPayment is a merchant's payment submission. The idempotency key
// travels out-of-band (Idempotency-Key header), not in the body.
type PostPayment struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	CVV         string `json:"cvv"`
}

// Payment is the durable outcome of a submission. It is written once and
// never updated; Status is decided at creation time.
type Payment struct {
	ID             string        `json:"id"`
	Status         PaymentStatus `json:"status"`
	CardLast4      string        `json:"last_four_card_digits"`
	ExpiryMonth    int           `json:"expiry_month"`
	ExpiryYear     int           `json:"expiry_year"`
	Currency       string        `json:"currency"`
	Amount         int64         `json:"amount"`
	IdempotencyKey string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
}

// FieldError is a single validation failure scoped to a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
