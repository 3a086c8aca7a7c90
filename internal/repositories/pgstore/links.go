package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories"
)

// Conn общий интерфейс *pgxpool.Pool, *pgx.Conn и pgx.Tx.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LinkRepo репозиторий ссылок в PostgreSQL.
type LinkRepo struct {
	conn Conn
}

func NewLinkRepo(conn Conn) *LinkRepo {
	return &LinkRepo{conn: conn}
}

const linkColumns = `id, user_id, original_url, short_code, created_at, updated_at`

func (r *LinkRepo) GetByID(ctx context.Context, id int64) (*models.Link, error) {
	link, err := r.queryOne(ctx, `SELECT `+linkColumns+` FROM links WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get link by id %d: %w", id, err)
	}
	return link, nil
}

func (r *LinkRepo) GetByShortCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := r.queryOne(ctx, `SELECT `+linkColumns+` FROM links WHERE short_code = $1`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get link by short code %s: %w", code, err)
	}
	return link, nil
}

func (r *LinkRepo) ExistsByShortCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	row := r.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM links WHERE short_code = $1)`, code)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check short code %s: %w", code, convertErrorType(err))
	}
	return exists, nil
}

// GetAllByOwner ссылки владельца, новые первыми.
func (r *LinkRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+linkColumns+` FROM links WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get links by owner %s: %w", ownerID, convertErrorType(err))
	}
	links, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Link])
	if err != nil {
		return nil, fmt.Errorf("failed to collect links by owner %s: %w", ownerID, convertErrorType(err))
	}
	return links, nil
}

func (r *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	created, err := r.queryOne(ctx,
		`INSERT INTO links (user_id, original_url, short_code) VALUES ($1, $2, $3) RETURNING `+linkColumns,
		link.OwnerID, link.OriginalURL, link.ShortCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create link %s: %w", link.ShortCode, err)
	}
	return created, nil
}

func (r *LinkRepo) Update(ctx context.Context, id int64, in models.LinkInput) (*models.Link, error) {
	updated, err := r.queryOne(ctx,
		`UPDATE links SET original_url = $2, short_code = $3, updated_at = now()
		WHERE id = $1 RETURNING `+linkColumns,
		id, in.OriginalURL, in.ShortCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update link %d: %w", id, err)
	}
	return updated, nil
}

func (r *LinkRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete link %d: %w", id, convertErrorType(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete link %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// queryOne выполняет запрос, возвращающий ровно одну ссылку. Ошибка уже сконвертирована.
func (r *LinkRepo) queryOne(ctx context.Context, sql string, args ...any) (*models.Link, error) {
	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, convertErrorType(err)
	}
	link, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Link])
	if err != nil {
		return nil, convertErrorType(err)
	}
	return link, nil
}
