// Package geocode reverse-geocodes venue coordinates through
// Nominatim into the address decomposition the region matcher
// consumes.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/kenniky/ultrank-scoring/internal/config"
	"github.com/kenniky/ultrank-scoring/internal/constants"
	"github.com/kenniky/ultrank-scoring/internal/domain"
)

const userAgent = "ultrank-scoring"

type Client struct {
	baseURL string
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.NominatimURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     2,
			ReadTimeout:         constants.GeocodeTimeout,
			WriteTimeout:        constants.GeocodeTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

type reverseResponse struct {
	Error   string `json:"error"`
	Address struct {
		CountryCode string `json:"country_code"`
		ISOLevel3   string `json:"ISO3166-2-lvl3"`
		ISOLevel4   string `json:"ISO3166-2-lvl4"`
		County      string `json:"county"`
		Postcode    string `json:"postcode"`
	} `json:"address"`
}

// Reverse resolves coordinates to an address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (domain.Address, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/reverse?format=jsonv2&lat=%f&lon=%f", c.baseURL, lat, lng))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(userAgent)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.GeocodeTimeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return domain.Address{}, fmt.Errorf("reverse geocoding: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return domain.Address{}, fmt.Errorf("reverse geocoding: status %d", resp.StatusCode())
	}

	var decoded reverseResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return domain.Address{}, fmt.Errorf("decoding nominatim response: %w", err)
	}
	if decoded.Error != "" {
		return domain.Address{}, fmt.Errorf("reverse geocoding: %s", decoded.Error)
	}

	c.logger.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Str("country_code", decoded.Address.CountryCode).
		Msg("reverse geocoded venue")

	return domain.Address{
		CountryCode: decoded.Address.CountryCode,
		ISOLevel3:   decoded.Address.ISOLevel3,
		ISOLevel4:   decoded.Address.ISOLevel4,
		County:      decoded.Address.County,
		Postcode:    decoded.Address.Postcode,
	}, nil
}
