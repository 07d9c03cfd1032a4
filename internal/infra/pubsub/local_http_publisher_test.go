package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"passage/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvent() *service.AccountEvent {
	return &service.AccountEvent{
		EventID:    "evt-1",
		Type:       service.EventAccountRegistered,
		UserID:     "user-1",
		Email:      "alice@example.com",
		OccurredAt: "2026-01-02T03:04:05Z",
		RequestID:  "req-1",
	}
}

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var received PubSubPushMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(server.URL, logger)

	event := newTestEvent()
	require.NoError(t, publisher.PublishAccountEvent(context.Background(), event))

	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, service.EventAccountRegistered, received.Message.Attributes["type"])
	assert.Equal(t, "req-1", received.Message.Attributes["request_id"])

	decoded, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var got service.AccountEvent
	require.NoError(t, json.Unmarshal(decoded, &got))
	assert.Equal(t, *event, got)

	assert.NoError(t, publisher.Close())
}

func TestLocalHTTPPublisher_EndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(server.URL, logger)

	err := publisher.PublishAccountEvent(context.Background(), newTestEvent())
	assert.Error(t, err)
}

func TestLocalHTTPPublisher_OmitsEmptyRequestID(t *testing.T) {
	var received PubSubPushMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(server.URL, logger)

	event := newTestEvent()
	event.RequestID = ""
	require.NoError(t, publisher.PublishAccountEvent(context.Background(), event))

	_, ok := received.Message.Attributes["request_id"]
	assert.False(t, ok)
}
