package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
)

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: config.GetHTTPClientTimeout()}
}

// getJSON performs a GET and decodes a 200 response into out.
func getJSON(ctx context.Context, client *http.Client, provider, op, rawURL string, params url.Values, header http.Header, out interface{}) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &ProviderError{Provider: provider, Op: op, Err: fmt.Errorf("%w: bad base URL: %w", ErrExternalAPI, err)}
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &ProviderError{Provider: provider, Op: op, Err: fmt.Errorf("%w: %w", ErrExternalAPI, err)}
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &ProviderError{Provider: provider, Op: op, Err: fmt.Errorf("%w: %w", ErrExternalAPI, err)}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		sentinel := ErrExternalAPI
		if resp.StatusCode == http.StatusNotFound {
			sentinel = ErrLocationNotFound
		}
		return &ProviderError{Provider: provider, Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", sentinel, string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Provider: provider, Op: op, Err: fmt.Errorf("%w: %w", ErrMalformedPayload, err)}
	}
	return nil
}
