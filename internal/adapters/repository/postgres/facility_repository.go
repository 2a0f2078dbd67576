package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	pgdb "github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/db/postgres"
)

const facilityColumns = `id, tenant_id, name, tax_id, address, ideal_headcount, shift_changeover_time, created_at, updated_at`

// FacilityRepository は施設を PostgreSQL に保存します。
type FacilityRepository struct {
	pool pgdb.Queryer
}

// NewFacilityRepository は FacilityRepository を生成します。
func NewFacilityRepository(pool pgdb.Queryer) *FacilityRepository {
	return &FacilityRepository{pool: pool}
}

// Create は新しい ID で施設を登録します。
func (r *FacilityRepository) Create(ctx context.Context, f *facility.Facility) (*facility.Facility, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO facilities (`+facilityColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+facilityColumns,
		newID(),
		f.TenantID,
		f.Name,
		f.TaxID,
		nullableString(f.Address),
		f.IdealHeadcount,
		timeOfDayParam(f.ShiftChangeoverTime),
		f.CreatedAt,
		f.UpdatedAt,
	)

	created, err := scanFacility(row)
	if err != nil {
		return nil, translateFacilityPgError(err)
	}
	return created, nil
}

// Delete は施設を削除し、外部キー経由で所有するデータもすべて削除します。
func (r *FacilityRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return translateFacilityPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return facility.ErrFacilityNotFound
	}
	return nil
}

// FindByID は ID で施設を取得します。
func (r *FacilityRepository) FindByID(ctx context.Context, id string) (*facility.Facility, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+facilityColumns+`
          FROM facilities
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanFacility(row)
	if err != nil {
		return nil, translateFacilityPgError(err)
	}
	return found, nil
}

// FindByTaxID は正規化済みの法人番号で施設を取得します。
func (r *FacilityRepository) FindByTaxID(ctx context.Context, taxID string) (*facility.Facility, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+facilityColumns+`
          FROM facilities
         WHERE tax_id = $1
         LIMIT 1
    `, taxID)

	found, err := scanFacility(row)
	if err != nil {
		return nil, translateFacilityPgError(err)
	}
	return found, nil
}

func scanFacility(row pgx.Row) (*facility.Facility, error) {
	var (
		f          facility.Facility
		address    sql.NullString
		changeover pgtype.Time
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := row.Scan(
		&f.ID,
		&f.TenantID,
		&f.Name,
		&f.TaxID,
		&address,
		&f.IdealHeadcount,
		&changeover,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, facility.ErrFacilityNotFound
		}
		return nil, err
	}

	if address.Valid {
		a := address.String
		f.Address = &a
	}
	f.ShiftChangeoverTime = timeOfDayFromPg(changeover)
	f.CreatedAt = createdAt
	f.UpdatedAt = updatedAt
	return &f, nil
}

func translateFacilityPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return facility.ErrFacilityNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return facility.ErrTaxIDAlreadyExists
		case checkViolationCode:
			return facility.ErrInvalidIdealHeadcount
		}
	}

	return err
}
