package httpclient

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/angelospk/sublight-go/pkg/core/metrics"
	"golang.org/x/time/rate"
)

const (
	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	xsiNS          = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS          = "http://www.w3.org/2001/XMLSchema"

	defaultTimeout = 60 * time.Second
)

// Client posts SOAP 1.1 messages to a single endpoint.
type Client struct {
	endpoint   string
	namespace  string
	userAgent  string
	httpClient *http.Client
	encodings  []string
	limiter    *rate.Limiter
	mu         sync.RWMutex // Protects endpoint
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// wrapped to decode compressed responses.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.httpClient = &clone
	}
}

// WithContentEncodings sets the response encodings advertised and decoded.
// Supported names are gzip, br and zstd. No names turns decoding off.
func WithContentEncodings(encodings ...string) Option {
	return func(c *Client) {
		c.encodings = encodings
	}
}

// WithRateLimit limits outgoing calls to qps requests per second.
// Zero or negative values disable limiting.
func WithRateLimit(qps int) Option {
	return func(c *Client) {
		if qps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(qps), qps)
	}
}

// New creates a new SOAP client.
func New(endpoint, namespace, userAgent string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		namespace:  namespace,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		encodings:  DefaultContentEncodings,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Transport = newDecodingTransport(c.httpClient.Transport, c.encodings)
	return c
}

// SetEndpoint updates the endpoint used for requests.
func (c *Client) SetEndpoint(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
}

// Endpoint returns the endpoint used for requests.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// Fault is a SOAP fault returned by the service.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soap:Envelope"`
	XSI     string      `xml:"xmlns:xsi,attr"`
	XSD     string      `xml:"xmlns:xsd,attr"`
	Soap    string      `xml:"xmlns:soap,attr"`
	Body    requestBody `xml:"soap:Body"`
}

type requestBody struct {
	Content interface{}
}

type responseEnvelope struct {
	Body struct {
		Fault   *Fault `xml:"Fault"`
		Content []byte `xml:",innerxml"`
	} `xml:"Body"`
}

// Call sends request as the body of a SOAP envelope for the given action and
// decodes the response body element into response.
// request must be a struct whose XMLName carries the message element name.
func (c *Client) Call(ctx context.Context, action string, request interface{}, response interface{}) (err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RemoteCallsTotal.WithLabelValues(action, status).Inc()
		metrics.RemoteCallDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	payload, err := xml.Marshal(requestEnvelope{
		XSI:  xsiNS,
		XSD:  xsdNS,
		Soap: soapEnvelopeNS,
		Body: requestBody{Content: request},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", c.namespace+action))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute %s request: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope responseEnvelope
	decodeErr := xml.Unmarshal(body, &envelope)
	if decodeErr == nil && envelope.Body.Fault != nil {
		return envelope.Body.Fault
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("soap request %s failed: status %d, body: %s", action, resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to unmarshal %s envelope: %w", action, decodeErr)
	}

	if response != nil {
		if err := xml.Unmarshal(envelope.Body.Content, response); err != nil {
			return fmt.Errorf("failed to unmarshal %s response: %w", action, err)
		}
	}
	return nil
}
