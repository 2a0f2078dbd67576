package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	pgdb "github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/db/postgres"
)

const contractColumns = `id, facility_id, tenant_id, daily_rate, night_shift_surcharge_rate, monthly_extra_benefits,
               tax_rate, employee_count, profit_margin_rate, absence_coverage_margin_rate, monthly_total_value,
               start_date, end_date, status, created_at, updated_at`

// ContractRepository は契約を PostgreSQL に保存します。
type ContractRepository struct {
	pool pgdb.Queryer
}

// NewContractRepository は ContractRepository を生成します。
func NewContractRepository(pool pgdb.Queryer) *ContractRepository {
	return &ContractRepository{pool: pool}
}

// Create は新しい ID で契約を登録します。
func (r *ContractRepository) Create(ctx context.Context, c *contract.Contract) (*contract.Contract, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO contracts (`+contractColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING `+contractColumns,
		newID(),
		c.FacilityID,
		c.TenantID,
		c.Terms.DailyRate,
		c.Terms.NightShiftSurchargeRate,
		c.Terms.MonthlyExtraBenefits,
		c.Terms.TaxRate,
		c.Terms.EmployeeCount,
		c.Terms.ProfitMarginRate,
		c.Terms.AbsenceCoverageMarginRate,
		c.MonthlyTotalValue,
		dateParam(c.Terms.StartDate),
		dateParam(c.Terms.EndDate),
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)

	created, err := scanContract(row)
	if err != nil {
		return nil, translateContractPgError(err)
	}
	return created, nil
}

// Update は契約の変更可能な項目をすべて置き換えます。
func (r *ContractRepository) Update(ctx context.Context, c *contract.Contract) (*contract.Contract, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE contracts
           SET daily_rate = $1,
               night_shift_surcharge_rate = $2,
               monthly_extra_benefits = $3,
               tax_rate = $4,
               employee_count = $5,
               profit_margin_rate = $6,
               absence_coverage_margin_rate = $7,
               monthly_total_value = $8,
               start_date = $9,
               end_date = $10,
               status = $11,
               updated_at = $12
         WHERE id = $13
        RETURNING `+contractColumns,
		c.Terms.DailyRate,
		c.Terms.NightShiftSurchargeRate,
		c.Terms.MonthlyExtraBenefits,
		c.Terms.TaxRate,
		c.Terms.EmployeeCount,
		c.Terms.ProfitMarginRate,
		c.Terms.AbsenceCoverageMarginRate,
		c.MonthlyTotalValue,
		dateParam(c.Terms.StartDate),
		dateParam(c.Terms.EndDate),
		string(c.Status),
		c.UpdatedAt,
		c.ID,
	)

	updated, err := scanContract(row)
	if err != nil {
		return nil, translateContractPgError(err)
	}
	return updated, nil
}

// Delete は契約を物理削除します。
func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return translateContractPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

// FindByID は ID で契約を取得します。
func (r *ContractRepository) FindByID(ctx context.Context, id string) (*contract.Contract, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+contractColumns+`
          FROM contracts
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanContract(row)
	if err != nil {
		return nil, translateContractPgError(err)
	}
	return found, nil
}

// FindInForceByFacility は施設の契約のうちステータスが INACTIVE でないものを取得します。
func (r *ContractRepository) FindInForceByFacility(ctx context.Context, facilityID string) (*contract.Contract, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+contractColumns+`
          FROM contracts
         WHERE facility_id = $1 AND status <> $2
         ORDER BY start_date DESC
         LIMIT 1
    `, facilityID, string(contract.StatusInactive))

	found, err := scanContract(row)
	if err != nil {
		return nil, translateContractPgError(err)
	}
	return found, nil
}

// ListByFacility は施設の契約を新しい順にすべて返します。
func (r *ContractRepository) ListByFacility(ctx context.Context, facilityID string) ([]*contract.Contract, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+contractColumns+`
          FROM contracts
         WHERE facility_id = $1
         ORDER BY start_date DESC, id DESC
    `, facilityID)
	if err != nil {
		return nil, translateContractPgError(err)
	}
	defer rows.Close()

	contracts := make([]*contract.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, translateContractPgError(err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translateContractPgError(err)
	}

	return contracts, nil
}

// MarkExpired は today より前に終了した有効な契約を無効化します。
func (r *ContractRepository) MarkExpired(ctx context.Context, today, updatedAt time.Time) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        UPDATE contracts
           SET status = $1,
               updated_at = $2
         WHERE status <> $1
           AND end_date < $3
    `, string(contract.StatusInactive), updatedAt, dateParam(today))
	if err != nil {
		return 0, translateContractPgError(err)
	}
	return tag.RowsAffected(), nil
}

func scanContract(row pgx.Row) (*contract.Contract, error) {
	var (
		c         contract.Contract
		status    string
		startDate time.Time
		endDate   time.Time
	)

	if err := row.Scan(
		&c.ID,
		&c.FacilityID,
		&c.TenantID,
		&c.Terms.DailyRate,
		&c.Terms.NightShiftSurchargeRate,
		&c.Terms.MonthlyExtraBenefits,
		&c.Terms.TaxRate,
		&c.Terms.EmployeeCount,
		&c.Terms.ProfitMarginRate,
		&c.Terms.AbsenceCoverageMarginRate,
		&c.MonthlyTotalValue,
		&startDate,
		&endDate,
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contract.ErrContractNotFound
		}
		return nil, err
	}

	c.Terms.StartDate = dateFromPg(startDate)
	c.Terms.EndDate = dateFromPg(endDate)
	c.Status = contract.Status(status)
	return &c, nil
}

func translateContractPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return contract.ErrContractNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == "contracts_facility_in_force_key" {
				return contract.ErrActiveContractExists
			}
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == "contracts_facility_id_fkey" {
				return contract.ErrFacilityNotFound
			}
		case checkViolationCode:
			if pgErr.ConstraintName == "contracts_period_check" {
				return contract.ErrInvalidPeriod
			}
		}
	}

	return err
}
