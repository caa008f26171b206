package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotify(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "42")
	n.apiBase = server.URL

	err := n.Notify(context.Background(), "🆕 iphone13_hs\niPhone 13 écran cassé\n120 €\nhttps://www.vinted.fr/items/123456789")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "42", gotBody.ChatID)
	assert.Contains(t, gotBody.Text, "iPhone 13 écran cassé")
	assert.True(t, gotBody.DisableWebPagePreview)
}

func TestTelegramNotifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "42")
	n.apiBase = server.URL

	err := n.Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestTelegramNotifyUnreachable(t *testing.T) {
	n := NewTelegramNotifier("test-token", "42")
	n.apiBase = "http://127.0.0.1:1"

	err := n.Notify(context.Background(), "hello")
	assert.Error(t, err)
}
