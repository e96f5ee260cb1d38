package payment

import "errors"

// YooKassaConfig contains configuration for the YooKassa API v3
type YooKassaConfig struct {
	// ShopID is the merchant shop identifier
	ShopID string
	// SecretKey is the API secret used for basic auth
	SecretKey string
	// ReturnURL is where the customer lands after checkout
	ReturnURL string
	// Currency is the ISO 4217 code payments are opened in
	Currency string
	// BaseURL overrides the API endpoint, used in tests
	BaseURL string
}

// Errors for configuration validation
var (
	ErrYooKassaMissingShopID    = errors.New("yookassa: missing shop ID")
	ErrYooKassaMissingSecretKey = errors.New("yookassa: missing secret key")
	ErrYooKassaMissingReturnURL = errors.New("yookassa: missing return URL")
)

// Validate validates the configuration
func (c *YooKassaConfig) Validate() error {
	if c.ShopID == "" {
		return ErrYooKassaMissingShopID
	}
	if c.SecretKey == "" {
		return ErrYooKassaMissingSecretKey
	}
	if c.ReturnURL == "" {
		return ErrYooKassaMissingReturnURL
	}
	return nil
}
