package domain

import "time"

type AuditAction string

const (
	AuditSyncError        AuditAction = "sync_error"
	AuditSyncAccountError AuditAction = "sync_account_error"
	AuditSyncCompleted    AuditAction = "sync_completed"
	AuditDisconnect       AuditAction = "ads_disconnect"
	AuditRecommendation   AuditAction = "recommendation_status"
)

type AuditEntry struct {
	UserID    *int           `json:"user_id"`
	Action    AuditAction    `json:"action"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}
