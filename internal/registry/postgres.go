package registry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRegistry struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects with pgxpool and creates the users table if needed.
func OpenPostgres(ctx context.Context, dsn string) (Registry, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	query := `CREATE TABLE IF NOT EXISTS users (id BIGINT PRIMARY KEY)`
	if _, err := pool.Exec(ctx, query); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &postgresRegistry{pool: pool}, nil
}

func (r *postgresRegistry) Contains(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var ok bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return ok, nil
}

func (r *postgresRegistry) Insert(ctx context.Context, id int64) error {
	query := `INSERT INTO users (id) VALUES ($1) ON CONFLICT DO NOTHING`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *postgresRegistry) All(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRegistry) Close() error {
	r.pool.Close()
	return nil
}
