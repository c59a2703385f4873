package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/repurpose"
	"github.com/fwojciec/repurpose/mock"
	repurposeslog "github.com/fwojciec/repurpose/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, fr *repurpose.FetchRequest) (*repurpose.FetchResponse, error) {
				return &repurpose.FetchResponse{URL: fr.URL, StatusCode: 200, Body: []byte("<html>content</html>")}, nil
			},
		}

		fetcher := repurposeslog.NewLoggingFetcher(inner, logger)
		resp, err := fetcher.Fetch(context.Background(), &repurpose.FetchRequest{URL: "https://example.com/post"})

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", string(resp.Body))
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/post")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, fr *repurpose.FetchRequest) (*repurpose.FetchResponse, error) {
				return nil, repurpose.Errorf(repurpose.ENETWORK, "network error")
			},
		}

		fetcher := repurposeslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), &repurpose.FetchRequest{URL: "https://example.com/post"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "network error")
	})
}

func TestLoggingFetcher_FetchNilRequest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, fr *repurpose.FetchRequest) (*repurpose.FetchResponse, error) {
			return nil, repurpose.Errorf(repurpose.EINVALID, "fetch URL required")
		},
	}

	fetcher := repurposeslog.NewLoggingFetcher(inner, logger)

	resp, err := fetcher.Fetch(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, repurpose.EINVALID, repurpose.ErrorCode(err))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "fetch URL required")
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := repurposeslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
