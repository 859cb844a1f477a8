package models

// AuthorizationRequest is the payload sent to the acquiring bank.
// Expiry is formatted as MM/YYYY, e.g. "04/2027".
type AuthorizationRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

// AuthorizationResult is the bank's definite decision. The bank being
// unreachable is not a result; the client reports that separately.
type AuthorizationResult struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
}
