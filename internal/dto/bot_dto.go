package dto

type BotStatusResponse struct {
	Online             bool   `json:"online"`
	Username           string `json:"username"`
	WebhookURL         string `json:"webhook_url"`
	PendingUpdates     int    `json:"pending_updates"`
	LastErrorDate      int64  `json:"last_error_date,omitempty"`
	LastErrorMessage   string `json:"last_error_message,omitempty"`
	HasCustomCert      bool   `json:"has_custom_cert"`
	SecretConfigured   bool   `json:"secret_configured"`
	MaxConnections     int    `json:"max_connections"`
	CheckedAtUnix      int64  `json:"checked_at_unix"`
	TransportDegraded  bool   `json:"transport_degraded"`
	TransportLastError string `json:"transport_last_error,omitempty"`
}

type RotateWebhookSecretResponse struct {
	WebhookURL string `json:"webhook_url"`
	RotatedAt  int64  `json:"rotated_at"`
}

type ResetBotResponse struct {
	WebhookURL string `json:"webhook_url"`
	ResetAt    int64  `json:"reset_at"`
}
