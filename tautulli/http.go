package tautulli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// sendRequest sends a HTTP request according to provided method and url,
// returning the response and its fully read body. Anything but a 200 with a
// JSON content-type is an error.
func sendRequest(ctx context.Context, method string, rawURL string, headers map[string]string, client *http.Client) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redact(req.URL)
		}
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp, nil, fmt.Errorf("http status %d for url %s", resp.StatusCode, redact(req.URL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}

	t, _, err := mime.ParseMediaType(resp.Header.Get("content-type"))
	if err != nil {
		return resp, body, fmt.Errorf("bad content-type: %w", err)
	}
	switch t {
	case "application/json", "text/json":
		return resp, body, nil
	default:
		return resp, body, fmt.Errorf("unexpected content-type: %s", t)
	}
}
