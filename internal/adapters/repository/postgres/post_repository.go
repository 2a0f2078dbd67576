package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
	pgdb "github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/db/postgres"
)

const postColumns = `id, facility_id, shift_start, shift_end, allows_double_shift, created_at, updated_at`

// PostRepository は勤務ポストを PostgreSQL に保存します。
type PostRepository struct {
	pool pgdb.Queryer
}

// NewPostRepository は PostRepository を生成します。
func NewPostRepository(pool pgdb.Queryer) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create は新しい ID でポストを登録します。
func (r *PostRepository) Create(ctx context.Context, p *post.WorkPost) (*post.WorkPost, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO work_posts (`+postColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+postColumns,
		newID(),
		p.FacilityID,
		timeOfDayParam(p.ShiftStart),
		timeOfDayParam(p.ShiftEnd),
		p.AllowsDoubleShift,
		p.CreatedAt,
		p.UpdatedAt,
	)

	created, err := scanPost(row)
	if err != nil {
		return nil, translatePostPgError(err)
	}
	return created, nil
}

// Update はポストの時間帯とダブルシフト可否を保存します。
func (r *PostRepository) Update(ctx context.Context, p *post.WorkPost) (*post.WorkPost, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE work_posts
           SET shift_start = $1,
               shift_end = $2,
               allows_double_shift = $3,
               updated_at = $4
         WHERE id = $5
        RETURNING `+postColumns,
		timeOfDayParam(p.ShiftStart),
		timeOfDayParam(p.ShiftEnd),
		p.AllowsDoubleShift,
		p.UpdatedAt,
		p.ID,
	)

	updated, err := scanPost(row)
	if err != nil {
		return nil, translatePostPgError(err)
	}
	return updated, nil
}

// Delete はポストとその割り当てを物理削除します。
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM work_posts WHERE id = $1`, id)
	if err != nil {
		return translatePostPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

// FindByID は ID でポストを取得します。
func (r *PostRepository) FindByID(ctx context.Context, id string) (*post.WorkPost, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+postColumns+`
          FROM work_posts
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanPost(row)
	if err != nil {
		return nil, translatePostPgError(err)
	}
	return found, nil
}

// ListByFacility は施設のポストをシフト開始時刻順に返します。
func (r *PostRepository) ListByFacility(ctx context.Context, facilityID string) ([]*post.WorkPost, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+postColumns+`
          FROM work_posts
         WHERE facility_id = $1
         ORDER BY shift_start, id
    `, facilityID)
	if err != nil {
		return nil, translatePostPgError(err)
	}
	defer rows.Close()

	posts := make([]*post.WorkPost, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, translatePostPgError(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePostPgError(err)
	}

	return posts, nil
}

// CountByFacility は施設のポスト数を返します。
func (r *PostRepository) CountByFacility(ctx context.Context, facilityID string) (int, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var count int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM work_posts WHERE facility_id = $1`, facilityID).Scan(&count); err != nil {
		return 0, translatePostPgError(err)
	}
	return count, nil
}

func scanPost(row pgx.Row) (*post.WorkPost, error) {
	var (
		p     post.WorkPost
		start pgtype.Time
		end   pgtype.Time
	)

	if err := row.Scan(
		&p.ID,
		&p.FacilityID,
		&start,
		&end,
		&p.AllowsDoubleShift,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, err
	}

	p.ShiftStart = timeOfDayFromPg(start)
	p.ShiftEnd = timeOfDayFromPg(end)
	return &p, nil
}

func translatePostPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return post.ErrPostNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		return post.ErrFacilityNotFound
	}

	return err
}
