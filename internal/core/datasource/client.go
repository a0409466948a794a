package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stokmate/stokmate-analytics-be/internal/core/analytics"
)

// ErrFetchTimeout marks a fetch that exceeded its deadline. Distinct from
// transport and status errors so callers can tell retry-worthy conditions
// apart.
var ErrFetchTimeout = errors.New("data source fetch timed out")

// FetchError is a failed fetch: transport error or non-2xx response.
type FetchError struct {
	Endpoint   string
	StatusCode int // 0 for transport errors
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client reads the three record collections from the external REST data
// source. All fetches honor the caller context plus a bounded per-request
// timeout.
type Client struct {
	baseURL      string
	http         *http.Client
	timeout      time.Duration
	invoiceLimit int
}

func NewClient(baseURL string, timeout time.Duration, invoiceLimit int) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
		timeout:      timeout,
		invoiceLimit: invoiceLimit,
	}
}

// FetchTransactions retrieves completed sales for the period.
func (c *Client) FetchTransactions(ctx context.Context, period analytics.Period) ([]analytics.Transaction, error) {
	query := url.Values{}
	query.Set("type", "sale")
	query.Set("period", string(period))

	var envelope struct {
		Transactions []wireTransaction `json:"transactions"`
	}
	if err := c.get(ctx, "/transactions?"+query.Encode(), &envelope); err != nil {
		return nil, err
	}

	transactions := make([]analytics.Transaction, len(envelope.Transactions))
	for i, w := range envelope.Transactions {
		transactions[i] = w.toCanonical()
	}
	return transactions, nil
}

// FetchProducts retrieves the full product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]analytics.Product, error) {
	var envelope struct {
		Products []wireProduct `json:"products"`
	}
	if err := c.get(ctx, "/products", &envelope); err != nil {
		return nil, err
	}

	products := make([]analytics.Product, len(envelope.Products))
	for i, w := range envelope.Products {
		products[i] = w.toCanonical()
	}
	return products, nil
}

// FetchInvoices retrieves recent supplier invoices.
func (c *Client) FetchInvoices(ctx context.Context) ([]analytics.Invoice, error) {
	endpoint := "/invoices/recent"
	if c.invoiceLimit > 0 {
		endpoint += "?limit=" + strconv.Itoa(c.invoiceLimit)
	}

	var envelope struct {
		Invoices []wireInvoice `json:"invoices"`
	}
	if err := c.get(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}

	invoices := make([]analytics.Invoice, len(envelope.Invoices))
	for i, w := range envelope.Invoices {
		invoices[i] = w.toCanonical()
	}
	return invoices, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", endpoint, ErrFetchTimeout)
		}
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
