// Package startgg is a minimal client for the start.gg GraphQL API:
// bearer auth, bounded retry on rate limits and gateway errors, and
// pagination for the entrant and set listings.
package startgg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/kenniky/ultrank-scoring/internal/config"
	"github.com/kenniky/ultrank-scoring/internal/constants"
)

type Client struct {
	endpoint string
	apiKey   string
	client   *fasthttp.Client
	logger   zerolog.Logger

	retryAttempts int
	retryDelay    time.Duration
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		endpoint: cfg.StartGGEndpoint,
		apiKey:   cfg.StartGGAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger:        logger,
		retryAttempts: constants.RetryAttempts,
		retryDelay:    constants.RetryDelay,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts one GraphQL query and unmarshals the data payload into
// out. Transient failures (429, 502, transport errors) are retried
// with a flat delay up to the configured attempt budget; GraphQL
// errors in a 200 response are terminal.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	var lastErr error

	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		status, respBody, err := c.post(ctx, body)
		if err != nil {
			lastErr = err
		} else if status != fasthttp.StatusOK {
			lastErr = fmt.Errorf("start.gg returned status %d", status)
		} else {
			var envelope gqlEnvelope
			if err := json.Unmarshal(respBody, &envelope); err != nil {
				return fmt.Errorf("decoding start.gg response: %w", err)
			}
			if len(envelope.Errors) > 0 {
				return fmt.Errorf("start.gg query failed: %s", envelope.Errors[0].Message)
			}
			return json.Unmarshal(envelope.Data, out)
		}

		if attempt == c.retryAttempts {
			break
		}

		c.logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("delay", c.retryDelay).
			Msg("start.gg request failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	return fmt.Errorf("start.gg request failed after %d attempts: %w", c.retryAttempts, lastErr)
}

func (c *Client) post(ctx context.Context, body []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, err
	}

	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return resp.StatusCode(), out, nil
}
