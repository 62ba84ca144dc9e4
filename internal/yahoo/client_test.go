package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 7, 18, 20, 0, 0, 0, time.UTC)

const okPayload = `{"chart":{"result":[{
	"meta":{"symbol":"AAPL","longName":"Apple Inc.","shortName":"Apple"},
	"timestamp":[1721136600,1721223000,1721309400],
	"indicators":{"quote":[{"close":[234.82,null,224.31],"volume":[43234300,null,null]}]}
}],"error":null}}`

// newMockChartServer serves body with status for every request and records the last request.
func newMockChartServer(status int, body string, last *atomic.Pointer[http.Request]) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if last != nil {
			last.Store(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestGetChart_Success(t *testing.T) {
	var last atomic.Pointer[http.Request]
	server := newMockChartServer(http.StatusOK, okPayload, &last)
	defer server.Close()

	client := NewClient(server.URL, time.Second, 0)
	raw, err := client.GetChart(context.Background(), "AAPL", models.Timeframe1M, testNow)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", raw.Symbol)
	assert.Equal(t, "Apple Inc.", raw.Name)
	assert.Len(t, raw.Timestamps, 3)
	require.Len(t, raw.Closes, 3)
	assert.Nil(t, raw.Closes[1])
	assert.Equal(t, 224.31, *raw.Closes[2])

	req := last.Load()
	require.NotNil(t, req)
	assert.Equal(t, "/AAPL", req.URL.Path)
	q := req.URL.Query()
	assert.Equal(t, "1d", q.Get("interval"))
	assert.Equal(t, "1718668800", q.Get("period1"), "period1 is 18 June 2024 UTC midnight")
	assert.Equal(t, "1721332800", q.Get("period2"))
}

func TestGetChart_NameFallsBackToShortName(t *testing.T) {
	body := strings.Replace(okPayload, `"longName":"Apple Inc.",`, "", 1)
	server := newMockChartServer(http.StatusOK, body, nil)
	defer server.Close()

	raw, err := NewClient(server.URL, time.Second, 0).GetChart(context.Background(), "AAPL", models.Timeframe1M, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Apple", raw.Name)
}

func TestGetChart_IndexSymbolIsEscaped(t *testing.T) {
	var last atomic.Pointer[http.Request]
	server := newMockChartServer(http.StatusOK, okPayload, &last)
	defer server.Close()

	_, err := NewClient(server.URL, time.Second, 0).GetChart(context.Background(), "^GSPC", models.Timeframe3M, testNow)
	require.NoError(t, err)
	assert.Equal(t, "/^GSPC", last.Load().URL.Path)
}

func TestGetChart_Failures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		cause  string
	}{
		{"not found", http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, "status: 404"},
		{"server error", http.StatusInternalServerError, `oops`, "status: 500"},
		{"chart error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input"}}}`, "Invalid input"},
		{"no result", http.StatusOK, `{"chart":{"result":[],"error":null}}`, "No data found"},
		{"missing timestamps", http.StatusOK, `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{"close":[1]}]}}]}}`, "Invalid data format"},
		{"missing quote", http.StatusOK, `{"chart":{"result":[{"meta":{},"timestamp":[1],"indicators":{"quote":[]}}]}}`, "Invalid data format"},
		{"missing close", http.StatusOK, `{"chart":{"result":[{"meta":{},"timestamp":[1],"indicators":{"quote":[{"volume":[1]}]}}]}}`, "Invalid data format"},
		{"malformed json", http.StatusOK, `{"chart":`, "malformed response"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := newMockChartServer(tc.status, tc.body, nil)
			defer server.Close()

			raw, err := NewClient(server.URL, time.Second, 0).GetChart(context.Background(), "ZZZZ", models.Timeframe3M, testNow)
			assert.Nil(t, raw)

			var upErr *models.UpstreamError
			require.True(t, errors.As(err, &upErr), "expected UpstreamError, got %v", err)
			assert.Equal(t, "ZZZZ", upErr.Symbol)
			assert.Contains(t, upErr.Cause, tc.cause)
		})
	}
}

func TestGetChart_EmptyTimestampsPassThrough(t *testing.T) {
	body := `{"chart":{"result":[{"meta":{"symbol":"NEW"},"timestamp":[],"indicators":{"quote":[{"close":[]}]}}]}}`
	server := newMockChartServer(http.StatusOK, body, nil)
	defer server.Close()

	raw, err := NewClient(server.URL, time.Second, 0).GetChart(context.Background(), "NEW", models.Timeframe1M, testNow)
	require.NoError(t, err)
	assert.Empty(t, raw.Timestamps)
}

func TestGetChart_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	start := time.Now()
	_, err := NewClient(server.URL, 100*time.Millisecond, 0).GetChart(context.Background(), "SLOW", models.Timeframe1M, testNow)
	var upErr *models.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Less(t, time.Since(start), time.Second)
}

func TestGetChart_CancelledContext(t *testing.T) {
	server := newMockChartServer(http.StatusOK, okPayload, nil)
	defer server.Close()

	// A limiter with no tokens left forces Wait to observe the cancelled context.
	client := NewClient(server.URL, time.Second, 0.001)
	_, err := client.GetChart(context.Background(), "AAPL", models.Timeframe1M, testNow)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.GetChart(ctx, "AAPL", models.Timeframe1M, testNow)
	var upErr *models.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.True(t, errors.Is(err, context.Canceled))
}
