package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const stripeTimeout = 10 * time.Second

// StripeClient talks to the Stripe REST API. All calls are bounded by
// stripeTimeout and must never run inside a database transaction.
type StripeClient struct {
	http *resty.Client
}

func NewStripeClient() *StripeClient {
	baseURL := os.Getenv("STRIPE_API_BASE")
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(stripeTimeout).
		SetAuthToken(os.Getenv("STRIPE_SECRET_KEY")).
		SetHeader("Accept", "application/json")

	return &StripeClient{http: client}
}

type StripeProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type StripePrice struct {
	ID         string `json:"id"`
	Product    string `json:"product"`
	UnitAmount int64  `json:"unit_amount"`
}

type CheckoutLine struct {
	PriceID  string
	Quantity int
}

type CheckoutSession struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	PaymentStatus     string `json:"payment_status"`
	ClientReferenceID string `json:"client_reference_id"`
}

type stripeProductList struct {
	Data []StripeProduct `json:"data"`
}

type stripePriceList struct {
	Data []StripePrice `json:"data"`
}

type stripeErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func providerErrorFromBody(body []byte) error {
	var parsed stripeErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &ProviderError{Message: parsed.Error.Message}
	}
	return &ProviderError{Message: string(body)}
}

func (c *StripeClient) ListActiveProducts() ([]StripeProduct, error) {
	var list stripeProductList
	resp, err := c.http.R().
		SetQueryParam("active", "true").
		SetQueryParam("limit", "100").
		SetResult(&list).
		Get("/v1/products")
	if err != nil {
		return nil, fmt.Errorf("failed to reach stripe: %w", err)
	}
	if resp.IsError() {
		return nil, providerErrorFromBody(resp.Body())
	}
	return list.Data, nil
}

func (c *StripeClient) ListActivePrices() ([]StripePrice, error) {
	var list stripePriceList
	resp, err := c.http.R().
		SetQueryParam("active", "true").
		SetQueryParam("limit", "100").
		SetResult(&list).
		Get("/v1/prices")
	if err != nil {
		return nil, fmt.Errorf("failed to reach stripe: %w", err)
	}
	if resp.IsError() {
		return nil, providerErrorFromBody(resp.Body())
	}
	return list.Data, nil
}

// CreateCheckoutSession creates a hosted card-payment session. The
// clientReference travels with the session so the success callback can
// locate the cart to clear without relying on request auth.
func (c *StripeClient) CreateCheckoutSession(lines []CheckoutLine, clientReference, successURL, cancelURL string) (*CheckoutSession, error) {
	form := map[string]string{
		"mode":                    "payment",
		"payment_method_types[0]": "card",
		"client_reference_id":     clientReference,
		"success_url":             successURL,
		"cancel_url":              cancelURL,
	}
	for i, line := range lines {
		form[fmt.Sprintf("line_items[%d][price]", i)] = line.PriceID
		form[fmt.Sprintf("line_items[%d][quantity]", i)] = strconv.Itoa(line.Quantity)
	}

	var session CheckoutSession
	resp, err := c.http.R().
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetFormData(form).
		SetResult(&session).
		Post("/v1/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to reach stripe: %w", err)
	}
	if resp.IsError() {
		return nil, providerErrorFromBody(resp.Body())
	}
	if session.URL == "" {
		return nil, &ProviderError{Message: "checkout session has no redirect URL"}
	}
	return &session, nil
}

func (c *StripeClient) GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	resp, err := c.http.R().
		SetResult(&session).
		Get("/v1/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reach stripe: %w", err)
	}
	if resp.IsError() {
		return nil, providerErrorFromBody(resp.Body())
	}
	return &session, nil
}
