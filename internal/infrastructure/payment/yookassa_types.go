package payment

// yookassaAmount represents a money value in API payloads
type yookassaAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// yookassaConfirmation carries the redirect target for the customer
type yookassaConfirmation struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
	URL       string `json:"confirmation_url,omitempty"`
}

// yookassaCreateRequest is the payload for opening a payment
type yookassaCreateRequest struct {
	Amount       yookassaAmount       `json:"amount"`
	Capture      bool                 `json:"capture"`
	Confirmation yookassaConfirmation `json:"confirmation"`
	Description  string               `json:"description,omitempty"`
	Metadata     map[string]string    `json:"metadata,omitempty"`
}

// yookassaPayment is the payment object the API returns
type yookassaPayment struct {
	ID           string                `json:"id"`
	Status       string                `json:"status"`
	Paid         bool                  `json:"paid"`
	Amount       yookassaAmount        `json:"amount"`
	Confirmation *yookassaConfirmation `json:"confirmation,omitempty"`
	Description  string                `json:"description,omitempty"`
	Metadata     map[string]string     `json:"metadata,omitempty"`
}

// yookassaErrorResponse represents an API error body
type yookassaErrorResponse struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Parameter   string `json:"parameter,omitempty"`
}

// yookassaNotification is the webhook envelope
type yookassaNotification struct {
	Type   string          `json:"type"`
	Event  string          `json:"event"`
	Object yookassaPayment `json:"object"`
}
