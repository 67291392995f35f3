package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgshop/listingresolver/internal/resolver"
	"vgshop/listingresolver/pkg/errors"
)

// stubResolver returns a canned outcome or error
type stubResolver struct {
	outcome *resolver.Outcome
	err     error
}

var _ ListingResolver = (*stubResolver)(nil)

func (s *stubResolver) Resolve(ctx context.Context, rawInput string) (*resolver.Outcome, error) {
	return s.outcome, s.err
}

// mockPublisher records published events
type mockPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
	trims    int
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{messages: make(map[string][][]byte)}
}

func (m *mockPublisher) Publish(key string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[key] = append(m.messages[key], message)
	return nil
}

func (m *mockPublisher) TrimStreams() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trims++
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func testListing() resolver.ProductListing {
	return resolver.ProductListing{
		Title:       "Red Dead Redemption 2",
		Platform:    resolver.PlatformSteam,
		ProductType: resolver.ProductTypeGame,
		Image:       "https://cdn.example.com/rdr2/header.jpg",
		Price:       59.99,
		Discounted:  23.99,
		Currency:    "GBP",
		URL:         "https://store.steampowered.com/app/1174180",
		OriginalURL: "https://store.steampowered.com/app/1174180/Red_Dead_Redemption_2/",
	}
}

func doResolve(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestResolveHandler(t *testing.T) {
	outcome := &resolver.Outcome{Listing: testListing(), Source: resolver.SourceLive}
	pub := newMockPublisher()
	s := NewServer(&stubResolver{outcome: outcome}, pub)

	rec := doResolve(s, `{"url": "https://store.steampowered.com/app/1174180/Red_Dead_Redemption_2/"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var listing resolver.ProductListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, outcome.Listing, listing)

	// The wire shape must carry the exact field names
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, field := range []string{"title", "platform", "productType", "image",
		"price", "discounted", "currency", "url", "originalUrl"} {
		assert.Contains(t, raw, field)
	}

	// The outcome was published with its source tag
	require.Len(t, pub.messages["Steam"], 1)
	var event resolver.Outcome
	require.NoError(t, json.Unmarshal(pub.messages["Steam"][0], &event))
	assert.Equal(t, resolver.SourceLive, event.Source)

	// Every publish is followed by a stream trim
	assert.Equal(t, 1, pub.trims)
}

func TestResolveHandlerMissingURL(t *testing.T) {
	s := NewServer(&stubResolver{}, newMockPublisher())

	rec := doResolve(s, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doResolve(s, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unsupported store", errors.NewUnsupportedStore("no match"), http.StatusBadRequest},
		{"identifier not found", errors.NewIdentifierNotFound("Steam", "no app id"), http.StatusBadRequest},
		{"upstream unavailable", errors.NewUpstreamUnavailable("Steam", "api down", nil), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(&stubResolver{err: tt.err}, newMockPublisher())

			rec := doResolve(s, `{"url": "whatever_00"}`)
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	s := NewServer(&stubResolver{}, newMockPublisher())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
