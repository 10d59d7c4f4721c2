package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var ErrFeedFileNotFound = errors.New("feed file not found")

// Fetcher reads {feedPath}/{file}.txt from a feed root.
// A maxBytes above zero reads at most that many bytes from the start of the file.
type Fetcher interface {
	Fetch(ctx context.Context, feedPath string, file string, maxBytes int64) ([]byte, error)
}

// NewFetcher picks a HTTP fetcher for URL roots and a directory fetcher otherwise
func NewFetcher(root string, maxRetries int) Fetcher {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return &HTTPFetcher{
			BaseURL:    root,
			MaxRetries: maxRetries,
		}
	}

	return &DirectoryFetcher{Root: root}
}

type HTTPFetcher struct {
	BaseURL       string
	Client        *http.Client
	MaxRetries    int
	RetryInterval time.Duration
}

func (f *HTTPFetcher) Fetch(ctx context.Context, feedPath string, file string, maxBytes int64) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s.txt", strings.TrimSuffix(f.BaseURL, "/"), feedPath, file)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if maxBytes > 0 {
			req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", maxBytes-1))
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("%s: %w", url, ErrFeedFileNotFound))
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return backoff.Permanent(fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode))
		}

		var reader io.Reader = resp.Body
		if maxBytes > 0 {
			reader = io.LimitReader(resp.Body, maxBytes)
		}

		body, err = io.ReadAll(reader)
		return err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	if f.RetryInterval > 0 {
		retryBackoff.InitialInterval = f.RetryInterval
	}

	maxRetries := f.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, uint64(maxRetries)), ctx))
	if err != nil {
		return nil, err
	}

	return body, nil
}

type DirectoryFetcher struct {
	Root string
}

func (f *DirectoryFetcher) Fetch(ctx context.Context, feedPath string, file string, maxBytes int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.Root, feedPath, file+".txt")

	handle, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrFeedFileNotFound)
	} else if err != nil {
		return nil, err
	}
	defer handle.Close()

	var reader io.Reader = handle
	if maxBytes > 0 {
		reader = io.LimitReader(handle, maxBytes)
	}

	return io.ReadAll(reader)
}
