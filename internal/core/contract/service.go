package contract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/unitofwork"
)

// Service は契約に関するユースケースをまとめます。
type Service struct {
	repo       Repository
	facilities FacilityFinder
	clock      calendar.Clock
	tx         unitofwork.TransactionManager
}

// UseCase は契約ユースケースの公開インターフェースです。
type UseCase interface {
	CreateContract(ctx context.Context, in CreateContractInput) (*Contract, error)
	GetContract(ctx context.Context, in GetContractInput) (*Contract, error)
	ListContracts(ctx context.Context, in ListContractsInput) ([]*Contract, error)
	UpdateContract(ctx context.Context, in UpdateContractInput) (*Contract, error)
	UpdateContractStatus(ctx context.Context, in UpdateContractStatusInput) (*Contract, error)
	DeleteContract(ctx context.Context, in DeleteContractInput) error
	CurrentContract(ctx context.Context, facilityID string) (*Contract, error)
	ExpireContracts(ctx context.Context) (int64, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, facilities FacilityFinder, clock calendar.Clock, tx unitofwork.TransactionManager) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{repo: repo, facilities: facilities, clock: clock, tx: unitofwork.OrNoop(tx)}
}

// CreateContractInput は契約作成時の入力です。MonthlyTotalValue が nil の場合は
// 価格計算エンジンで条件から価格を算出します。
type CreateContractInput struct {
	FacilityID        string
	TenantID          string
	Terms             Terms
	MonthlyTotalValue *decimal.Decimal
	Status            *Status
}

// UpdateContractInput は契約の全項目を置き換える入力です。
type UpdateContractInput struct {
	ID                string
	Terms             Terms
	MonthlyTotalValue *decimal.Decimal
}

// UpdateContractStatusInput はステータス変更時の入力です。
type UpdateContractStatusInput struct {
	ID     string
	Status Status
}

// GetContractInput は契約取得時の入力です。
type GetContractInput struct {
	ID string
}

// ListContractsInput は契約一覧取得時の入力です。
type ListContractsInput struct {
	FacilityID string
}

// DeleteContractInput は契約削除時の入力です。
type DeleteContractInput struct {
	ID string
}

// Prepare は作成入力を検証し、月額を確定させた未保存の契約を返します。I/O は行いません。
func Prepare(in CreateContractInput) (*Contract, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return nil, ErrInvalidFacilityID
	}

	status := StatusPending
	if in.Status != nil {
		if !IsValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	terms, total, err := ResolveTerms(in.Terms, in.MonthlyTotalValue)
	if err != nil {
		return nil, err
	}

	return &Contract{
		FacilityID:        facilityID,
		TenantID:          strings.TrimSpace(in.TenantID),
		Terms:             terms,
		MonthlyTotalValue: total,
		Status:            status,
	}, nil
}

// CreateContract は有効な契約を持たない既存施設に対して契約を検証・保存します。
func (s *Service) CreateContract(ctx context.Context, in CreateContractInput) (*Contract, error) {
	c, err := Prepare(in)
	if err != nil {
		return nil, err
	}

	var created *Contract
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureFacilityExists(txCtx, c.FacilityID); err != nil {
			return err
		}
		if c.InForce() {
			if err := s.ensureNoContractInForce(txCtx, c.FacilityID, ""); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		c.CreatedAt = now
		c.UpdatedAt = now

		result, err := s.repo.Create(txCtx, c)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateContract は契約の条件と価格を置き換えます。部分更新はサポートしません。
func (s *Service) UpdateContract(ctx context.Context, in UpdateContractInput) (*Contract, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	terms, total, err := ResolveTerms(in.Terms, in.MonthlyTotalValue)
	if err != nil {
		return nil, err
	}

	var updated *Contract
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.Terms = terms
		existing.MonthlyTotalValue = total
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateContractStatus は契約のステータスを変更します。施設に別の有効な契約がある間は再有効化を拒否します。
func (s *Service) UpdateContractStatus(ctx context.Context, in UpdateContractStatusInput) (*Contract, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if !IsValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *Contract
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if !existing.InForce() && in.Status != StatusInactive {
			if err := s.ensureNoContractInForce(txCtx, existing.FacilityID, existing.ID); err != nil {
				return err
			}
		}

		existing.Status = in.Status
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetContract は ID で契約を取得します。
func (s *Service) GetContract(ctx context.Context, in GetContractInput) (*Contract, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Contract
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListContracts は施設の契約をすべて返します。
func (s *Service) ListContracts(ctx context.Context, in ListContractsInput) ([]*Contract, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return nil, ErrInvalidFacilityID
	}

	var contracts []*Contract
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByFacility(txCtx, facilityID)
		if err != nil {
			return err
		}
		contracts = result
		return nil
	}); err != nil {
		return nil, err
	}

	return contracts, nil
}

// CurrentContract は施設の有効な契約を返します。
func (s *Service) CurrentContract(ctx context.Context, facilityID string) (*Contract, error) {
	id := strings.TrimSpace(facilityID)
	if id == "" {
		return nil, ErrInvalidFacilityID
	}

	var found *Contract
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindInForceByFacility(txCtx, id)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// DeleteContract は契約を物理削除します。
func (s *Service) DeleteContract(ctx context.Context, in DeleteContractInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// ExpireContracts は終了日を過ぎた契約をすべて無効化します。
func (s *Service) ExpireContracts(ctx context.Context) (int64, error) {
	now := s.clock.Now()
	today := calendar.Today(s.clock)

	var changed int64
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		n, err := s.repo.MarkExpired(txCtx, today, now)
		if err != nil {
			return err
		}
		changed = n
		return nil
	}); err != nil {
		return 0, err
	}

	return changed, nil
}

func (s *Service) ensureFacilityExists(ctx context.Context, facilityID string) error {
	if s.facilities == nil {
		return nil
	}
	if _, err := s.facilities.FindByID(ctx, facilityID); err != nil {
		if errors.Is(err, facility.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ensureNoContractInForce(ctx context.Context, facilityID, exceptID string) error {
	current, err := s.repo.FindInForceByFacility(ctx, facilityID)
	if err != nil && !errors.Is(err, ErrContractNotFound) {
		return err
	}
	if current != nil && current.ID != exceptID {
		return ErrActiveContractExists
	}
	return nil
}

// ValidateTerms は月額に依存しない契約ルールをすべて検証します。
func ValidateTerms(t Terms) error {
	if err := pricing.ValidateCosts(t.DailyRate, t.EmployeeCount, t.MonthlyExtraBenefits); err != nil {
		return err
	}

	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"night shift surcharge rate", t.NightShiftSurchargeRate},
		{"tax rate", t.TaxRate},
		{"profit margin rate", t.ProfitMarginRate},
		{"absence coverage margin rate", t.AbsenceCoverageMarginRate},
	}
	for _, r := range rates {
		if err := pricing.ValidateRate(r.name, r.rate); err != nil {
			return err
		}
	}

	if t.StartDate.IsZero() || t.EndDate.IsZero() || calendar.Normalize(t.EndDate).Before(calendar.Normalize(t.StartDate)) {
		return ErrInvalidPeriod
	}
	return nil
}

// ResolveTerms は t を検証し、日付を正規化した条件と月額を返します。
// monthlyTotal が指定されていれば丸めて使い、なければ価格計算エンジンで算出します。
func ResolveTerms(t Terms, monthlyTotal *decimal.Decimal) (Terms, decimal.Decimal, error) {
	if err := ValidateTerms(t); err != nil {
		return Terms{}, decimal.Zero, err
	}

	t.StartDate = calendar.Normalize(t.StartDate)
	t.EndDate = calendar.Normalize(t.EndDate)

	if monthlyTotal != nil {
		if !monthlyTotal.IsPositive() {
			return Terms{}, decimal.Zero, ErrInvalidMonthlyTotal
		}
		return t, pricing.RoundMoney(*monthlyTotal), nil
	}

	breakdown, err := pricing.Calculate(t.PricingInput())
	if err != nil {
		return Terms{}, decimal.Zero, err
	}
	return t, breakdown.MonthlyTotalValue, nil
}
