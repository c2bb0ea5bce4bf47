package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubBotAPI(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for method, handler := range handlers {
		mux.HandleFunc("/bot"+testBotToken+"/"+method, handler)
	}
	return httptest.NewServer(mux)
}

func TestBotClientGetMe(t *testing.T) {
	srv := newStubBotAPI(t, map[string]http.HandlerFunc{
		"getMe": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok":true,"result":{"id":7,"is_bot":true,"username":"trade_bot","first_name":"Trade"}}`))
		},
	})
	defer srv.Close()

	client := NewBotClient(srv.URL, testBotToken)
	info, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Id)
	assert.Equal(t, "trade_bot", info.Username)
}

func TestBotClientGetMeAPIError(t *testing.T) {
	srv := newStubBotAPI(t, map[string]http.HandlerFunc{
		"getMe": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
		},
	})
	defer srv.Close()

	client := NewBotClient(srv.URL, testBotToken)
	_, err := client.GetMe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestBotClientSetWebhook(t *testing.T) {
	var got map[string]string
	srv := newStubBotAPI(t, map[string]http.HandlerFunc{
		"setWebhook": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			w.Write([]byte(`{"ok":true,"result":true}`))
		},
	})
	defer srv.Close()

	client := NewBotClient(srv.URL, testBotToken)
	err := client.SetWebhook(context.Background(), "https://app.example.com/hook", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/hook", got["url"])
	assert.Equal(t, "s3cret", got["secret_token"])
}

func TestBotClientSendMessage(t *testing.T) {
	var got map[string]interface{}
	srv := newStubBotAPI(t, map[string]http.HandlerFunc{
		"sendMessage": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
		},
	})
	defer srv.Close()

	client := NewBotClient(srv.URL, testBotToken)
	err := client.SendMessage(context.Background(), 987654321, "<b>Hello</b>")
	require.NoError(t, err)
	assert.Equal(t, float64(987654321), got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestBotClientWebhookInfo(t *testing.T) {
	srv := newStubBotAPI(t, map[string]http.HandlerFunc{
		"getWebhookInfo": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok":true,"result":{"url":"https://app.example.com/hook","pending_update_count":3,"last_error_date":1700000000,"last_error_message":"connection refused"}}`))
		},
	})
	defer srv.Close()

	client := NewBotClient(srv.URL, testBotToken)
	info, err := client.GetWebhookInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, info.PendingUpdateCount)
	assert.Equal(t, "connection refused", info.LastErrorMessage)
}
