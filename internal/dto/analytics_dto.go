package dto

type AnalyticsStatsResponse struct {
	TotalUsers      int64   `json:"total_users"`
	ActiveUsers     int64   `json:"active_users"`
	BannedUsers     int64   `json:"banned_users"`
	TotalRevenue    float64 `json:"total_revenue"`
	RevenueLabel    string  `json:"revenue_label"`
	PendingPayments int64   `json:"pending_payments"`
	ApprovedToday   int64   `json:"approved_today"`
	ActiveBans      int64   `json:"active_bans"`
	BroadcastsSent  int64   `json:"broadcasts_sent"`
}
