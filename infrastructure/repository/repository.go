// Package repository persiste contas, campanhas, conexões, recomendações e auditoria no Postgres.
package repository

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/vfg2006/campaign-advisor-api/infrastructure/repository AccountRepository,AuditRepository,CampaignRepository,ConnectionRepository,RecommendationRepository
