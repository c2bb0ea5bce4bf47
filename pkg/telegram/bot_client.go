package telegram

import (
	"context"

	"trademini-be/pkg/remote"
)

// BotClient speaks to the Telegram Bot API through the shared remote
// invoker. The bot token lives in the URL, so calls carry no separate
// credential.
type BotClient struct {
	invoker *remote.Invoker
}

// NewBotClient builds a client for one bot. apiBase is normally
// "https://api.telegram.org"; tests point it at a stub server.
func NewBotClient(apiBase, botToken string, opts ...remote.Option) *BotClient {
	return &BotClient{
		invoker: remote.NewInvoker(apiBase+"/bot"+botToken, remote.NoCredentials{}, opts...),
	}
}

// BotInfo is the getMe projection the diagnostics panel shows.
type BotInfo struct {
	Id        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// WebhookInfo mirrors getWebhookInfo.
type WebhookInfo struct {
	URL                string `json:"url"`
	PendingUpdateCount int    `json:"pending_update_count"`
	LastErrorDate      int64  `json:"last_error_date"`
	LastErrorMessage   string `json:"last_error_message"`
}

func (c *BotClient) GetMe(ctx context.Context) (*BotInfo, error) {
	res := c.invoker.Invoke(ctx, "getMe", struct{}{}, false)
	if res.Failed() {
		return nil, res.Err
	}
	var info BotInfo
	if err := res.Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *BotClient) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	res := c.invoker.Invoke(ctx, "getWebhookInfo", struct{}{}, false)
	if res.Failed() {
		return nil, res.Err
	}
	var info WebhookInfo
	if err := res.Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *BotClient) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	body := map[string]string{"url": webhookURL}
	if secretToken != "" {
		body["secret_token"] = secretToken
	}
	res := c.invoker.Invoke(ctx, "setWebhook", body, false)
	return res.Err
}

func (c *BotClient) DeleteWebhook(ctx context.Context) error {
	res := c.invoker.Invoke(ctx, "deleteWebhook", map[string]bool{"drop_pending_updates": false}, false)
	return res.Err
}

// SendMessage delivers one broadcast message to a chat.
func (c *BotClient) SendMessage(ctx context.Context, chatId int64, text string) error {
	res := c.invoker.Invoke(ctx, "sendMessage", map[string]interface{}{
		"chat_id":    chatId,
		"text":       text,
		"parse_mode": "HTML",
	}, false)
	return res.Err
}
