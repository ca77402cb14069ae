package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/employeegw/employee"
	"github.com/byte4ever/employeegw/resilience"
)

// maxBodyBytes bounds how much of an upstream response is read.
const maxBodyBytes = 8 << 20

// Gateway performs the four upstream operations against a base URL.
// Every returned error is classified with [resilience.Transient] or
// [resilience.Permanent].
type Gateway struct {
	client  *Client
	baseURL string
}

// NewGateway creates a Gateway. A nil client uses NewClient(nil, nil).
func NewGateway(baseURL string, client *Client) *Gateway {
	if client == nil {
		client = NewClient(nil, nil)
	}

	return &Gateway{client: client, baseURL: baseURL}
}

// FetchAll returns every employee. An empty body or a missing data field
// is a structural failure, not an empty list.
func (g *Gateway) FetchAll(ctx context.Context) ([]employee.Record, error) {
	body, err := g.call(ctx, opFetchAll, "", nil)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return nil, unavailable(opFetchAll, errors.New("empty body"))
	}

	var env employee.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, unavailable(opFetchAll, fmt.Errorf("decode envelope: %w", err))
	}

	if env.Data == nil {
		return nil, unavailable(opFetchAll, errors.New("envelope has no data"))
	}

	return env.Data, nil
}

// FetchByID returns one employee. A 404, an empty body or a null data
// field yields ErrNotFound.
func (g *Gateway) FetchByID(ctx context.Context, id string) (employee.Record, error) {
	body, err := g.call(ctx, opFetchByID, id, nil)
	if err != nil {
		return employee.Record{}, err
	}

	rec, found, err := decodeSingle(body)
	if err != nil {
		return employee.Record{}, unavailable(opFetchByID, err)
	}

	if !found {
		return employee.Record{}, resilience.Permanent(
			fmt.Errorf("%w: id %q", ErrNotFound, id),
		)
	}

	return rec, nil
}

// Create posts the caller's raw field map and returns the created record.
func (g *Gateway) Create(ctx context.Context, fields map[string]any) (employee.Record, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return employee.Record{}, unavailable(opCreate, fmt.Errorf("encode body: %w", err))
	}

	body, err := g.call(ctx, opCreate, "", payload)
	if err != nil {
		return employee.Record{}, err
	}

	rec, found, err := decodeSingle(body)
	if err != nil {
		return employee.Record{}, unavailable(opCreate, err)
	}

	if !found {
		return employee.Record{}, unavailable(opCreate, errors.New("no record in response"))
	}

	return rec, nil
}

// DeleteByID deletes one employee. The response body is ignored.
func (g *Gateway) DeleteByID(ctx context.Context, id string) error {
	_, err := g.call(ctx, opDeleteByID, id, nil)

	return err
}

// call sends one request and returns the full response body of a
// successful exchange.
func (g *Gateway) call(
	ctx context.Context,
	op operation,
	id string,
	payload []byte,
) ([]byte, error) {
	rt := routes[op]

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rt.method, rt.url(g.baseURL, id), reqBody)
	if err != nil {
		return nil, unavailable(op, fmt.Errorf("build request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, classify(op, rt, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, unavailable(op, fmt.Errorf("read body: %w", err))
	}

	return bytes.TrimSpace(body), nil
}

func classify(op operation, rt route, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return resilience.Transient(
				fmt.Errorf("%w: %s: %w", ErrRateLimited, op, err),
			)
		case statusErr.Class == Permanent && rt.notFoundOn404 &&
			statusErr.StatusCode == http.StatusNotFound:
			return resilience.Permanent(
				fmt.Errorf("%w: %s: %w", ErrNotFound, op, err),
			)
		}
	}

	return unavailable(op, err)
}

func unavailable(op operation, err error) error {
	return resilience.Transient(fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err))
}

// decodeSingle reads a record that may be bare or wrapped in an envelope.
// found is false for an empty body, a null data field or an empty record.
func decodeSingle(body []byte) (rec employee.Record, found bool, err error) {
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return employee.Record{}, false, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return employee.Record{}, false, fmt.Errorf("decode record: %w", err)
	}

	raw := json.RawMessage(body)
	if data, ok := probe["data"]; ok {
		raw = data
	}

	if err := json.Unmarshal(raw, &rec); err != nil {
		return employee.Record{}, false, fmt.Errorf("decode record: %w", err)
	}

	return rec, !rec.IsZero(), nil
}
