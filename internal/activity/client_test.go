package activity

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// newRecordingServer serves handler under /api/v1/activities and records
// every request it sees.
func newRecordingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func newObservedClient(t *testing.T, baseURL string) (*Client, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.ErrorLevel)
	c, err := NewClient(baseURL, WithLogger(zap.New(core)))
	require.NoError(t, err)
	return c, logs
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, u.String())

	u, err = parseBaseURL("example.com:9000/api/v1/activities/?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com:9000/api/v1/activities", u.String())

	_, err = parseBaseURL("http://")
	assert.Error(t, err)
}

func TestRecommend_PostsJSONAndDecodes(t *testing.T) {
	t.Parallel()

	want := RecommendResponse{Recommendations: []PlaceInfo{
		{PlaceName: "Green Leaf Cafe", Category: "cafe", DistanceMeter: 350, TravelTimeMin: 5, IsEcoFriendly: true},
	}}
	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	})

	c, logs := newObservedClient(t, server.URL+"/api/v1/activities")
	req := RecommendRequest{
		UserID:       7,
		ChargingTime: 30,
		TravelTime:   5,
		PersonCount:  2,
		Purposes:     []string{"rest"},
		Locations:    []string{"cafe", "park"},
		Preferences:  "quiet",
	}

	got, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/api/v1/activities/recommend", reqs[0].Path)
	assert.Equal(t, "application/json", reqs[0].ContentType)

	var sent RecommendRequest
	require.NoError(t, json.Unmarshal(reqs[0].Body, &sent))
	assert.Equal(t, req, sent)
	assert.Zero(t, logs.Len())
}

func TestRecommend_DecodesBackendEcoFlag(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"recommendations":[` +
			`{"placeName":"Green Leaf","category":"cafe","distanceMeter":350,"travelTimeMin":5,"ecoFriendly":true},` +
			`{"placeName":"Mall","category":"shopping","ecoFriendly":false}]}`))
	})
	c, _ := newObservedClient(t, server.URL)

	got, err := c.Recommend(context.Background(), RecommendRequest{})
	require.NoError(t, err)
	require.Len(t, got.Recommendations, 2)
	assert.True(t, got.Recommendations[0].IsEcoFriendly)
	assert.False(t, got.Recommendations[1].IsEcoFriendly)

	encoded, err := json.Marshal(got.Recommendations[0])
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"ecoFriendly":true`)
}

func TestRecommend_ServerMessageBecomesError(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"weather service unavailable"}`))
	})
	c, logs := newObservedClient(t, server.URL)

	_, err := c.Recommend(context.Background(), RecommendRequest{})
	require.Error(t, err)
	assert.Equal(t, "weather service unavailable", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "recommend: status 400: weather service unavailable",
		logs.All()[0].ContextMap()["detail"])
}

func TestRecommend_DefaultMessage(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":      "<html>oops</html>",
		"empty body":    "",
		"no message":    `{"error":"x"}`,
		"blank message": `{"message":"  "}`,
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(body))
			})
			c, logs := newObservedClient(t, server.URL)

			_, err := c.Recommend(context.Background(), RecommendRequest{})
			require.Error(t, err)
			assert.Equal(t, DefaultRecommendMessage, err.Error())
			assert.Equal(t, 1, logs.Len())
		})
	}
}

func TestRecommend_DecodeFailure(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	})
	c, logs := newObservedClient(t, server.URL)

	_, err := c.Recommend(context.Background(), RecommendRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.Equal(t, 1, logs.Len())
}

func TestRecommend_TransportFailureIsLoggedAndReturned(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c, logs := newObservedClient(t, "http://"+addr)
	_, err = c.Recommend(context.Background(), RecommendRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute request")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "recommend", entries[0].ContextMap()["op"])
}

func TestEstimatedTime_GetsPathAndDecodes(t *testing.T) {
	t.Parallel()

	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"estimatedTime": 40})
	})
	c, _ := newObservedClient(t, server.URL+"/api/v1/activities")

	for _, id := range []any{42, int64(42), "42"} {
		got, err := c.EstimatedTime(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 40.0, got.EstimatedTime)
		assert.Equal(t, 40, got.Minutes())
	}

	reqs := requests()
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/activities/estimated-time/42", r.Path)
		assert.Empty(t, r.Body)
	}
}

func TestEstimatedTime_EscapesUserID(t *testing.T) {
	t.Parallel()

	server, requests := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"estimatedTime":1}`))
	})
	c, _ := newObservedClient(t, server.URL)

	_, err := c.EstimatedTime(context.Background(), "a b")
	require.NoError(t, err)
	assert.Equal(t, "/estimated-time/a%20b", requests()[0].Path)
}

func TestEstimatedTime_StatusFailureUsesDefaultMessage(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"user not found"}`))
	})
	c, logs := newObservedClient(t, server.URL)

	_, err := c.EstimatedTime(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, DefaultEstimatedTimeMessage, err.Error())
	assert.Equal(t, 1, logs.Len())
}

func TestEstimatedTime_RequiresUserID(t *testing.T) {
	c, _ := newObservedClient(t, "127.0.0.1:1")
	_, err := c.EstimatedTime(context.Background(), nil)
	assert.Error(t, err)
	_, err = c.EstimatedTime(context.Background(), "  ")
	assert.Error(t, err)
}

func TestClient_HonorsContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	t.Cleanup(func() { close(release) })

	c, _ := newObservedClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.EstimatedTime(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "err = %v", err)
}

func TestWithTimeout(t *testing.T) {
	c, err := NewClient("", WithTimeout(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.http.Timeout)

	c, err = NewClient("")
	require.NoError(t, err)
	assert.Zero(t, c.http.Timeout)
	assert.True(t, strings.HasPrefix(c.userAgent, "wtd/"))
}

func TestWithTimeout_LeavesSuppliedHTTPClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	for name, opts := range map[string][]Option{
		"timeout last":  {WithHTTPClient(shared), WithTimeout(2 * time.Second)},
		"timeout first": {WithTimeout(2 * time.Second), WithHTTPClient(shared)},
	} {
		t.Run(name, func(t *testing.T) {
			c, err := NewClient("", opts...)
			require.NoError(t, err)
			assert.Equal(t, 2*time.Second, c.http.Timeout)
			assert.NotSame(t, shared, c.http)
			assert.Equal(t, time.Minute, shared.Timeout)
		})
	}
}

func TestWithHTTPClient_UsedForRequests(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"estimatedTime":12}`))
	})

	var calls int
	var mu sync.Mutex
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return http.DefaultTransport.RoundTrip(r)
	})}

	c, err := NewClient(server.URL, WithHTTPClient(hc))
	require.NoError(t, err)
	_, err = c.EstimatedTime(context.Background(), 1)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestEstimatedTimeResponse_Minutes(t *testing.T) {
	assert.Equal(t, 0, EstimatedTimeResponse{EstimatedTime: -3}.Minutes())
	assert.Equal(t, 25, EstimatedTimeResponse{EstimatedTime: 24.6}.Minutes())
}
