package adsdomain

// CampaignRow é uma linha da consulta de desempenho de campanhas (GAQL),
// sem nenhuma normalização
type CampaignRow struct {
	Campaign       Campaign       `json:"campaign"`
	CampaignBudget CampaignBudget `json:"campaignBudget"`
	Metrics        Metrics        `json:"metrics"`
}

type Campaign struct {
	ResourceName           string      `json:"resourceName"`
	ID                     Int64       `json:"id"`
	Name                   string      `json:"name"`
	Status                 Enum        `json:"status"`
	AdvertisingChannelType Enum        `json:"advertisingChannelType"`
	TargetCPA              *TargetCPA  `json:"targetCpa,omitempty"`
	TargetROAS             *TargetROAS `json:"targetRoas,omitempty"`
}

type TargetCPA struct {
	TargetCPAMicros Micros `json:"targetCpaMicros"`
}

type TargetROAS struct {
	TargetROAS Float `json:"targetRoas"`
}

type CampaignBudget struct {
	AmountMicros Micros `json:"amountMicros"`
}

type Metrics struct {
	Impressions      Int64  `json:"impressions"`
	Clicks           Int64  `json:"clicks"`
	Conversions      Float  `json:"conversions"`
	ConversionsValue Float  `json:"conversionsValue"`
	CostMicros       Micros `json:"costMicros"`
}
