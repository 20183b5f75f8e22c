package dataset

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var httpClient = &http.Client{
	Timeout: 20 * time.Second,
}

func isRemote(source string) bool {
	l := strings.ToLower(source)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// fetchExport downloads a survey export, retrying transient failures
// with exponential backoff. Client errors are permanent.
func fetchExport(url string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var body []byte
	var lastErr error
	op := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = err
			return err
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			lastErr = fmt.Errorf("fetch export: %s", resp.Status)
			return backoff.Permanent(lastErr)
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("fetch export: %s", resp.Status)
			return lastErr
		}
		body = b
		return nil
	}

	if err := backoff.Retry(op, bo); err != nil {
		return nil, lastErr
	}
	return body, nil
}
