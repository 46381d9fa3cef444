package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"parcels/internal/domain"
)

// USDRateClient reads the USD quote from a CBR-style daily JSON feed.
type USDRateClient struct {
	http *http.Client
	url  string
}

type apiResponse struct {
	Valute map[string]struct {
		Value *float64 `json:"Value"`
	} `json:"Valute"`
}

// GetUSDRate never retries; every failure is reported as domain.ErrUpstream.
func (c *USDRateClient) GetUSDRate(ctx context.Context) (float64, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse rate URL: %v", domain.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to execute request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrUpstream, resp.StatusCode, resp.Status)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}

	usd, ok := body.Valute["USD"]
	if !ok || usd.Value == nil {
		return 0, fmt.Errorf("%w: response has no Valute.USD.Value", domain.ErrUpstream)
	}
	if *usd.Value <= 0 {
		return 0, fmt.Errorf("%w: non-positive USD rate %v", domain.ErrUpstream, *usd.Value)
	}

	return *usd.Value, nil
}

func NewUSDRateClient(httpClient *http.Client, rateURL string) *USDRateClient {
	return &USDRateClient{http: httpClient, url: rateURL}
}
