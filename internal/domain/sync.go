package domain

import "time"

type SchedulerState string

const (
	SchedulerIdle    SchedulerState = "idle"
	SchedulerWaiting SchedulerState = "waiting"
	SchedulerRunning SchedulerState = "running"
)

type SyncStatus struct {
	LastSync *time.Time     `json:"lastSync"`
	NextSync *time.Time     `json:"nextSync"`
	Status   string         `json:"status"`
	State    SchedulerState `json:"state"`
}

const (
	SyncStatusScheduled = "scheduled"
	SyncStatusError     = "error"
)

// SyncReport resume um ciclo de sincronização
type SyncReport struct {
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	Identities       int       `json:"identities"`
	SyncedIdentities int       `json:"synced_identities"`
	// SkippedIdentities conta identidades sem contas selecionadas, ignoradas no ciclo
	SkippedIdentities int `json:"skipped_identities"`
	FailedIdentities int       `json:"failed_identities"`
	SyncedAccounts   int       `json:"synced_accounts"`
	FailedAccounts   int       `json:"failed_accounts"`
	SyncedCampaigns  int       `json:"synced_campaigns"`
}

// Merge soma o resultado de uma identidade ao relatório do ciclo
func (r *SyncReport) Merge(other *SyncReport) {
	if other == nil {
		return
	}

	r.Identities += other.Identities
	r.SyncedIdentities += other.SyncedIdentities
	r.SkippedIdentities += other.SkippedIdentities
	r.FailedIdentities += other.FailedIdentities
	r.SyncedAccounts += other.SyncedAccounts
	r.FailedAccounts += other.FailedAccounts
	r.SyncedCampaigns += other.SyncedCampaigns
}

type ManualSyncResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	SyncedUsers     int    `json:"syncedUsers"`
	SyncedAccounts  *int   `json:"syncedAccounts,omitempty"`
	SyncedCampaigns *int   `json:"syncedCampaigns,omitempty"`
}
