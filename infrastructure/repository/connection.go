package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

const connectionsTable = "meta_connections"

var connectionColumns = []string{
	"id",
	"user_id",
	"account_id",
	"account_name",
	"access_token_encrypted",
	"created_at",
	"updated_at",
}

// ConnectionRepository persiste as conexões usuário -> conta Meta.
// O campo AccessToken trafega já cifrado nesta camada.
type ConnectionRepository interface {
	Save(ctx context.Context, conn *domain.Connection) (*domain.Connection, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Connection, error)
	GetByUserAndAccount(ctx context.Context, userID, accountID string) (*domain.Connection, error)
	GetLatestByUser(ctx context.Context, userID string) (*domain.Connection, error)
	Delete(ctx context.Context, userID, accountID string) (bool, error)
}

type connectionRepository struct {
	conn postgres.Queryer
}

func NewConnectionRepository(conn postgres.Queryer) ConnectionRepository {
	return &connectionRepository{
		conn: conn,
	}
}

// Save insere ou atualiza pelo par (user_id, account_id)
func (r *connectionRepository) Save(ctx context.Context, conn *domain.Connection) (*domain.Connection, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	query, args, err := squirrel.StatementBuilder.
		Insert(connectionsTable).
		Columns(connectionColumns...).
		Values(id, conn.UserID, conn.AccountID, conn.AccountName, conn.AccessToken, now, now).
		Suffix(`ON CONFLICT (user_id, account_id) DO UPDATE SET
			account_name = EXCLUDED.account_name,
			access_token_encrypted = EXCLUDED.access_token_encrypted,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	saved := *conn
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":    conn.UserID,
			"account_id": conn.AccountID,
			"error":      err.Error(),
		}).Error("repository: failed to save connection")
		return nil, err
	}

	return &saved, nil
}

func (r *connectionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Connection, error) {
	query, args, err := squirrel.
		Select(connectionColumns...).
		From(connectionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("account_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	connections := make([]*domain.Connection, 0)
	for rows.Next() {
		c, err := deserializeConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, c)
	}

	return connections, rows.Err()
}

func (r *connectionRepository) GetByUserAndAccount(ctx context.Context, userID, accountID string) (*domain.Connection, error) {
	return r.getOne(ctx, squirrel.Select(connectionColumns...).
		From(connectionsTable).
		Where(squirrel.Eq{"user_id": userID, "account_id": accountID}))
}

func (r *connectionRepository) GetLatestByUser(ctx context.Context, userID string) (*domain.Connection, error) {
	return r.getOne(ctx, squirrel.Select(connectionColumns...).
		From(connectionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		Limit(1))
}

// getOne retorna nil, nil quando não há registro
func (r *connectionRepository) getOne(ctx context.Context, builder squirrel.SelectBuilder) (*domain.Connection, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	c, err := deserializeConnection(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return c, nil
}

func (r *connectionRepository) Delete(ctx context.Context, userID, accountID string) (bool, error) {
	query, args, err := squirrel.
		Delete(connectionsTable).
		Where(squirrel.Eq{"user_id": userID, "account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func deserializeConnection(row scanner) (*domain.Connection, error) {
	c := &domain.Connection{}

	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.AccountID,
		&c.AccountName,
		&c.AccessToken,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return c, nil
}
