package upstream

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/byte4ever/employeegw/upstream"

// ErrorClass tells the gateway how to treat an HTTP status code.
type ErrorClass int

const (
	// Success means the request succeeded (e.g. 2xx).
	Success ErrorClass = iota
	// Transient means the failure may go away on retry (e.g. 429, 503).
	Transient
	// Permanent means retrying cannot help (e.g. 404).
	Permanent
)

// String returns the lower-case class name.
func (c ErrorClass) String() string {
	switch c {
	case Success:
		return "success"
	case Transient:
		return "transient"
	case Permanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Classifier maps an HTTP status code to an ErrorClass.
type Classifier func(statusCode int) ErrorClass

// DefaultClassifier treats 2xx as success, 404 as permanent and every
// other status as transient.
func DefaultClassifier(statusCode int) ErrorClass {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return Success
	case statusCode == http.StatusNotFound:
		return Permanent
	default:
		return Transient
	}
}

// StatusError is returned by [Client.Do] when the classifier rejects the
// response status. The response body has already been drained and closed.
type StatusError struct {
	StatusCode int
	Class      ErrorClass
}

// Error returns a human-readable description of the status error.
func (e *StatusError) Error() string {
	return "http status " + strconv.Itoa(e.StatusCode) + " (" + e.Class.String() + ")"
}

// Client wraps an http.Client with status classification and tracing.
type Client struct {
	hc     *http.Client
	cl     Classifier
	tracer trace.Tracer
}

// NewClient creates a Client. A nil hc uses http.DefaultClient and a nil
// cl uses [DefaultClassifier].
func NewClient(hc *http.Client, cl Classifier) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}

	if cl == nil {
		cl = DefaultClassifier
	}

	return &Client{
		hc:     hc,
		cl:     cl,
		tracer: otel.Tracer(tracerName),
	}
}

// Do sends req inside a client span. Transport failures are returned as
// is; a status the classifier does not accept yields a *StatusError.
// On success the caller owns the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx, span := c.tracer.Start(
		req.Context(),
		"upstream "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
		),
	)
	defer span.End()

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.hc.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	class := c.cl(resp.StatusCode)
	if class == Success {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	statusErr := &StatusError{StatusCode: resp.StatusCode, Class: class}
	span.SetStatus(codes.Error, statusErr.Error())

	return nil, statusErr
}
