package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/allocation"
	pgdb "github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/db/postgres"
)

const allocationColumns = `id, tenant_id, employee_id, post_id, date, status, kind, created_at, updated_at`

// AllocationRepository は割り当てを PostgreSQL に保存します。
type AllocationRepository struct {
	pool pgdb.Queryer
}

// NewAllocationRepository は AllocationRepository を生成します。
func NewAllocationRepository(pool pgdb.Queryer) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

// Create は新しい ID で割り当てを登録します。
func (r *AllocationRepository) Create(ctx context.Context, a *allocation.Allocation) (*allocation.Allocation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO allocations (`+allocationColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+allocationColumns,
		newID(),
		a.TenantID,
		a.EmployeeID,
		a.PostID,
		dateParam(a.Date),
		string(a.Status),
		string(a.Kind),
		a.CreatedAt,
		a.UpdatedAt,
	)

	created, err := scanAllocation(row)
	if err != nil {
		return nil, translateAllocationPgError(err)
	}
	return created, nil
}

// Update は割り当てのステータスと種別を保存します。
func (r *AllocationRepository) Update(ctx context.Context, a *allocation.Allocation) (*allocation.Allocation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE allocations
           SET status = $1,
               kind = $2,
               updated_at = $3
         WHERE id = $4
        RETURNING `+allocationColumns,
		string(a.Status),
		string(a.Kind),
		a.UpdatedAt,
		a.ID,
	)

	updated, err := scanAllocation(row)
	if err != nil {
		return nil, translateAllocationPgError(err)
	}
	return updated, nil
}

// Delete は割り当てを物理削除します。
func (r *AllocationRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM allocations WHERE id = $1`, id)
	if err != nil {
		return translateAllocationPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return allocation.ErrAllocationNotFound
	}
	return nil
}

// FindByID は ID で割り当てを取得します。
func (r *AllocationRepository) FindByID(ctx context.Context, id string) (*allocation.Allocation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+allocationColumns+`
          FROM allocations
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanAllocation(row)
	if err != nil {
		return nil, translateAllocationPgError(err)
	}
	return found, nil
}

// ListByEmployee は従業員の割り当てを日付順ですべて返します。
func (r *AllocationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*allocation.Allocation, error) {
	return r.list(ctx, `
        SELECT `+allocationColumns+`
          FROM allocations
         WHERE employee_id = $1
         ORDER BY date, id
    `, employeeID)
}

// ListByPostAndDate は指定日にポストへ配置された割り当てを返します。
func (r *AllocationRepository) ListByPostAndDate(ctx context.Context, postID string, date time.Time) ([]*allocation.Allocation, error) {
	return r.list(ctx, `
        SELECT `+allocationColumns+`
          FROM allocations
         WHERE post_id = $1 AND date = $2
         ORDER BY created_at, id
    `, postID, dateParam(date))
}

func (r *AllocationRepository) list(ctx context.Context, query string, args ...any) ([]*allocation.Allocation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateAllocationPgError(err)
	}
	defer rows.Close()

	allocations := make([]*allocation.Allocation, 0)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, translateAllocationPgError(err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translateAllocationPgError(err)
	}

	return allocations, nil
}

func scanAllocation(row pgx.Row) (*allocation.Allocation, error) {
	var (
		a      allocation.Allocation
		date   time.Time
		status string
		kind   string
	)

	if err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.EmployeeID,
		&a.PostID,
		&date,
		&status,
		&kind,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, allocation.ErrAllocationNotFound
		}
		return nil, err
	}

	a.Date = dateFromPg(date)
	a.Status = allocation.Status(status)
	a.Kind = allocation.Kind(kind)
	return &a, nil
}

func translateAllocationPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return allocation.ErrAllocationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		switch pgErr.ConstraintName {
		case "allocations_employee_id_fkey":
			return allocation.ErrEmployeeNotFound
		case "allocations_post_id_fkey":
			return allocation.ErrPostNotFound
		}
	}

	return err
}
