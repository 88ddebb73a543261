package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
)

// única tabela do serviço: tokens ficam cifrados, nunca em texto puro
var statements = []string{
	`CREATE TABLE IF NOT EXISTS meta_connections (
		id VARCHAR(32) PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL,
		account_id VARCHAR(64) NOT NULL,
		account_name VARCHAR(255) NOT NULL DEFAULT '',
		access_token_encrypted TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, account_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meta_connections_user_updated
		ON meta_connections (user_id, updated_at DESC)`,
}

// EnsureSchema cria a tabela de conexões quando ainda não existe, tudo numa transação
func EnsureSchema(ctx context.Context, conn postgres.Conn) error {
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return applyStatements(ctx, tx)
	})
	if err != nil {
		return err
	}

	logrus.WithField("elapsed", time.Since(startTime).String()).Info("migration: schema ready")

	return nil
}

func applyStatements(ctx context.Context, q postgres.Queryer) error {
	for i, statement := range statements {
		if _, err := q.ExecContext(ctx, statement); err != nil {
			logrus.WithFields(logrus.Fields{
				"statement": i + 1,
				"error":     err.Error(),
			}).Error("migration: failed to apply schema")
			return err
		}
	}

	return nil
}
