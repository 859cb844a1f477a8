package gateway

import "time"

// Config is a configuration for the payment gateway application
type Config struct {
	HTTPAddr string
	// BankURL is the base URL of the acquiring bank API.
	BankURL string
	// BankTimeout bounds a single authorization attempt.
	BankTimeout time.Duration
	// BankAttempts is the total number of authorization attempts per
	// submission; values above 1 enable the retry decorator.
	BankAttempts int
	// BankBackoff is the base delay between retry attempts.
	BankBackoff time.Duration
	// ExpiryTZ is an IANA timezone name for card expiry comparisons
	// (e.g., "Australia/Sydney").
	ExpiryTZ string
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:     "localhost:8090",
		BankURL:      "http://localhost:8091",
		BankTimeout:  5 * time.Second,
		BankAttempts: 1,
		BankBackoff:  100 * time.Millisecond,
	}
}
