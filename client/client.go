//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mock/client.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/totegamma/routegate/core"
)

const (
	defaultTimeout = 10 * time.Second
)

var tracer = otel.Tracer("client")

// Client fetches remote permission documents. Requests carry the process
// cookie jar so the permission endpoint sees the user's session.
type Client interface {
	Get(ctx context.Context, url string) (core.Document, error)
}

type client struct {
	http *http.Client
}

func NewClient() Client {
	jar, _ := cookiejar.New(nil)
	return &client{
		http: &http.Client{
			Timeout:   defaultTimeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *client) Get(ctx context.Context, url string) (core.Document, error) {
	ctx, span := tracer.Start(ctx, "Client.Get")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = errors.Errorf("unexpected status code: %d", resp.StatusCode)
		span.RecordError(err)
		return nil, err
	}

	var document core.Document
	err = json.NewDecoder(resp.Body).Decode(&document)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to decode response")
	}

	return document, nil
}
