// Package payments drives the Stripe REST API the way the app did:
// form-encoded requests against api.stripe.com with the secret key.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/internal/domain"
	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Card struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Card *Card  `json:"card,omitempty"`
}

type PaymentIntent struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Created  int64  `json:"created"`
}

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// IPaymentGateway is the card tokenization and charge surface the funds
// service depends on.
type IPaymentGateway interface {
	CreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (*PaymentMethod, error)
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
	ListPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethod, error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID, paymentMethodID string) (*PaymentIntent, error)
	ListCharges(ctx context.Context, customerID string) ([]*Charge, error)
}

type stripeClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewStripeClient(cfg config.StripeConfig, logger zerolog.Logger) IPaymentGateway {
	return &stripeClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *stripeClient) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)

	var customer Customer
	if err := c.call(ctx, http.MethodPost, "/v1/customers", form, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *stripeClient) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) (*PaymentMethod, error) {
	form := url.Values{}
	form.Set("customer", customerID)

	var method PaymentMethod
	endpoint := "/v1/payment_methods/" + paymentMethodID + "/attach"
	if err := c.call(ctx, http.MethodPost, endpoint, form, &method); err != nil {
		return nil, err
	}
	return &method, nil
}

func (c *stripeClient) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	endpoint := "/v1/payment_methods/" + paymentMethodID + "/detach"
	return c.call(ctx, http.MethodPost, endpoint, url.Values{}, nil)
}

func (c *stripeClient) ListPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethod, error) {
	query := url.Values{}
	query.Set("customer", customerID)
	query.Set("type", "card")

	var envelope listEnvelope
	if err := c.call(ctx, http.MethodGet, "/v1/payment_methods?"+query.Encode(), nil, &envelope); err != nil {
		return nil, err
	}

	var methods []*PaymentMethod
	if err := json.Unmarshal(envelope.Data, &methods); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment methods: %w", err)
	}
	return methods, nil
}

func (c *stripeClient) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID, paymentMethodID string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("customer", customerID)
	form.Set("payment_method", paymentMethodID)
	form.Set("confirm", "true")
	form.Add("payment_method_types[]", "card")

	var intent PaymentIntent
	if err := c.call(ctx, http.MethodPost, "/v1/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *stripeClient) ListCharges(ctx context.Context, customerID string) ([]*Charge, error) {
	query := url.Values{}
	query.Set("customer", customerID)

	var envelope listEnvelope
	if err := c.call(ctx, http.MethodGet, "/v1/charges?"+query.Encode(), nil, &envelope); err != nil {
		return nil, err
	}

	var charges []*Charge
	if err := json.Unmarshal(envelope.Data, &charges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charges: %w", err)
	}
	return charges, nil
}

func (c *stripeClient) call(ctx context.Context, method, endpoint string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil && method != http.MethodGet {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.GatewayError{Message: err.Error()}
	}

	// Stripe reports failures in the body, which the clients surfaced
	// to users verbatim.
	var envelope errorEnvelope
	if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != nil {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Str("code", envelope.Error.Code).
			Msg("Stripe error response")
		return &domain.GatewayError{Message: envelope.Error.Message, Code: envelope.Error.Code}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.GatewayError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
