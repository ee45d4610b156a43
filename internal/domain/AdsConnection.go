package domain

import "time"

// AdsConnection é a conexão ativa de um administrador com a plataforma de anúncios.
// O refresh token é guardado cifrado e só aparece em claro dentro do serviço.
type AdsConnection struct {
	UserID        int       `json:"user_id"`
	RootAccountID string    `json:"root_account_id"`
	RefreshToken  string    `json:"-"`
	Active        bool      `json:"active"`
	ConnectedAt   time.Time `json:"connected_at"`
}

// Usable indica se a credencial tem o mínimo necessário para consultar a plataforma
func (c *AdsConnection) Usable() bool {
	return c != nil && c.Active && c.RootAccountID != "" && c.RefreshToken != ""
}

type ConnectRequest struct {
	RootAccountID string `json:"rootAccountId" validate:"required,numeric"`
	RefreshToken  string `json:"refreshToken" validate:"required"`
}

// ConnectResponse traz a conexão gravada e o resultado da primeira sincronização
type ConnectResponse struct {
	Connection *AdsConnection `json:"connection"`
	Report     *SyncReport    `json:"report,omitempty"`
	SyncError  string         `json:"sync_error,omitempty"`
}
