package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/suicart/escrow-backend/internal/repository"
)

type Repositories struct {
	Transactions repo.Transactions
	Profiles     repo.Profiles
	AuditLogs    repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Transactions: &transactionsRepo{pool},
		Profiles:     &profilesRepo{pool},
		AuditLogs:    &auditLogsRepo{pool},
	}
}
