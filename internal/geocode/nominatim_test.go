package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/kenniky/ultrank-scoring/internal/domain"
)

func testClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &fasthttp.Client{},
		logger:  zerolog.Nop(),
	}
}

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		fmt.Fprint(w, `{"address":{
			"country_code":"jp",
			"ISO3166-2-lvl4":"JP-13",
			"county":"Setagaya",
			"postcode":"158-0094"
		}}`)
	}))
	defer srv.Close()

	addr, err := testClient(srv.URL).Reverse(context.Background(), 35.6, 139.7)
	require.NoError(t, err)

	assert.Equal(t, domain.Address{
		CountryCode: "jp",
		ISOLevel4:   "JP-13",
		County:      "Setagaya",
		Postcode:    "158-0094",
	}, addr)
}

func TestReverse_NominatimError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"Unable to geocode"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Reverse(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unable to geocode")
}

func TestReverse_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Reverse(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
