package edgesql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/unisql/unisql/driver"
)

// Adapter speaks to a stateless SQL-over-HTTP service: every statement is
// one POST round trip against an endpoint that executes it and returns the
// rows as JSON. There is no session, so neither interactive transactions nor
// batches are supported; batches degrade to the sequential tier.
type Adapter struct {
	cfg Config
}

var _ driver.Adapter = (*Adapter)(nil)

// NewAdapter creates the edge SQL adapter. No request is made until the
// owning Driver first needs the connection.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) Name() string { return "edgesql-http" }

func (a *Adapter) Dialect() driver.Dialect { return driver.DialectPostgres }

func (a *Adapter) Capabilities() driver.Capabilities {
	return driver.Capabilities{Transactions: false, Batch: false}
}

// Connect builds the HTTP client and verifies the endpoint with a trivial
// statement, mirroring the ping other adapters do.
func (a *Adapter) Connect(ctx context.Context) (driver.Conn, error) {
	if a.cfg.Endpoint == "" {
		return nil, driver.NewConnectionError("edge SQL endpoint is not configured", nil)
	}

	timeout := a.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &conn{
		endpoint: a.cfg.Endpoint,
		apiKey:   a.cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}

	if _, err := c.Execute(ctx, "SELECT 1", nil); err != nil {
		return nil, driver.NewConnectionError("failed to reach edge SQL endpoint", err)
	}
	return c, nil
}

type conn struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ driver.Conn = (*conn)(nil)

// queryRequest and queryResponse are the wire shapes of the SQL-over-HTTP
// protocol.
type queryRequest struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params,omitempty"`
}

type queryResponse struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int64            `json:"rowCount"`
	Error    string           `json:"error,omitempty"`
	Code     string           `json:"code,omitempty"`
}

func (c *conn) Execute(ctx context.Context, sqlText string, params []any) (*driver.Result, error) {
	body, err := json.Marshal(queryRequest{SQL: sqlText, Params: params})
	if err != nil {
		return nil, driver.NewQueryError("failed to encode query request", err, sqlText, params)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, driver.NewQueryError("failed to build query request", err, sqlText, params)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, driver.NewConnectionError("edge SQL request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, driver.NewConnectionError("failed to read edge SQL response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, payload, sqlText, params)
	}

	var decoded queryResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, driver.NewQueryError("failed to decode edge SQL response", err, sqlText, params)
	}
	if decoded.Error != "" {
		qe := driver.NewQueryError(decoded.Error, nil, sqlText, params)
		qe.Code = decoded.Code
		return nil, qe
	}

	res := &driver.Result{
		Columns:  decoded.Columns,
		Rows:     decoded.Rows,
		RowCount: decoded.RowCount,
	}
	if res.RowCount == 0 && len(res.Rows) > 0 {
		res.RowCount = int64(len(res.Rows))
	}
	return res, nil
}

// Begin always fails: a stateless HTTP backend cannot hold a transaction
// open across round trips.
func (c *conn) Begin(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return nil, driver.NewFeatureNotSupportedError(
		"Interactive transactions", "Begin",
		"issue single statements, or move multi-statement work server-side",
	)
}

func (c *conn) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}

// statusError maps HTTP status codes onto the driver taxonomy. 429 and 503
// keep their numeric codes so they stay centrally classifiable as retryable.
func statusError(status int, payload []byte, sqlText string, params []any) error {
	msg := fmt.Sprintf("edge SQL endpoint returned HTTP %d", status)

	switch status {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		qe := driver.NewQueryError(msg, nil, sqlText, params)
		qe.Code = fmt.Sprintf("%d", status)
		return qe
	case http.StatusUnauthorized, http.StatusForbidden:
		return driver.NewConnectionError(msg, nil)
	}

	var decoded queryResponse
	if err := json.Unmarshal(payload, &decoded); err == nil && decoded.Error != "" {
		msg = decoded.Error
	}
	qe := driver.NewQueryError(msg, nil, sqlText, params)
	qe.Code = fmt.Sprintf("%d", status)
	return qe
}
