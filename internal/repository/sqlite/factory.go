package sqlite

import (
	"time"

	"gorm.io/gorm"

	repo "github.com/suicart/escrow-backend/internal/repository"
)

type Repositories struct {
	Transactions repo.Transactions
	Profiles     repo.Profiles
	AuditLogs    repo.AuditLogs
}

type Option func(*options)

type options struct{ now func() time.Time }

// WithClock overrides the timestamp source used for created_at and completed_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewRepositories(db *gorm.DB, opts ...Option) Repositories {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, fn := range opts {
		fn(&o)
	}
	return Repositories{
		Transactions: &transactionsRepo{db: db, now: o.now},
		Profiles:     &profilesRepo{db: db, now: o.now},
		AuditLogs:    &auditLogsRepo{db: db, now: o.now},
	}
}

// AutoMigrate creates the tables used by the repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&transactionRow{}, &profileRow{}, &auditLogRow{})
}
