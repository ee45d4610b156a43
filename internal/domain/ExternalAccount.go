package domain

import "time"

// ExternalAccount é uma conta de anúncios na plataforma externa (Google Ads).
// Contas gerenciadoras (MCC) agrupam contas cliente, que são as donas das campanhas.
type ExternalAccount struct {
	AccountID       string    `json:"account_id"`
	OwnerUserID     int       `json:"owner_user_id"`
	DisplayName     string    `json:"display_name"`
	IsManager       bool      `json:"is_manager"`
	ParentAccountID *string   `json:"parent_account_id"`
	IsPrimary       bool      `json:"is_primary"`
	IsSelected      bool      `json:"is_selected"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AccountResolution é o resultado da descoberta de hierarquia a partir da conta raiz
type AccountResolution struct {
	IsManager    bool               `json:"is_manager"`
	LeafAccounts []*ExternalAccount `json:"leaf_accounts"`
	// Degraded indica que a hierarquia não pôde ser lida e a raiz foi assumida isolada
	Degraded bool `json:"degraded"`
}

// Contains indica se a resolução lista a conta informada
func (r *AccountResolution) Contains(accountID string) bool {
	if r == nil {
		return false
	}

	for _, acc := range r.LeafAccounts {
		if acc.AccountID == accountID {
			return true
		}
	}

	return false
}

type UpdateAccountSelectionRequest struct {
	AccountIDs []string `json:"accountIds" validate:"required,dive,required"`
}
