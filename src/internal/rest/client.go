package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
)

// Client is a REST client for the HTTP API. It implements guilded.API.
//
// The client is stateless; methods may be called concurrently.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   twelf.Logger
	tracer   opentracing.Tracer
}

// NewClient returns a REST client that authenticates with the given token.
func NewClient(
	endpoint string,
	token string,
	httpClient *http.Client,
	logger twelf.Logger,
	tracer opentracing.Tracer,
) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     httpClient,
		logger:   logger,
		tracer:   tracer,
	}
}

// do issues a single HTTP request and decodes the response body into out,
// which may be nil when the response body is irrelevant.
//
// Transport failures are returned wrapped; non-2xx responses are returned
// as guilded.HTTPError.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	out interface{},
) error {
	url := c.endpoint + path

	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, c.tracer, "api.request")
	defer span.Finish()

	ext.SpanKindRPCClient.Set(span)
	ext.HTTPMethod.Set(span, method)
	ext.HTTPUrl.Set(span, url)

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req = req.WithContext(ctx)

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		ext.Error.Set(span, true)
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer res.Body.Close()

	ext.HTTPStatusCode.Set(span, uint16(res.StatusCode))
	logRequest(c.logger, method, path, res.StatusCode)

	buf, err := ioutil.ReadAll(res.Body)
	if err != nil {
		ext.Error.Set(span, true)
		return errors.Wrapf(err, "%s %s failed", method, path)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		ext.Error.Set(span, true)
		return guilded.HTTPError{
			Status: res.StatusCode,
			Body:   string(buf),
		}
	}

	if out != nil && len(buf) != 0 {
		if err := json.Unmarshal(buf, out); err != nil {
			return errors.Wrapf(err, "%s %s returned a malformed body", method, path)
		}
	}

	return nil
}
