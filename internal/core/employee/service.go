package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/unitofwork"
)

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
	nationalIDDigits    = 11
)

// Service は従業員に関するユースケースをまとめます。
type Service struct {
	repo       Repository
	facilities FacilityFinder
	contracts  ContractFinder
	clock      calendar.Clock
	tx         unitofwork.TransactionManager
}

// UseCase は従業員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	GetEmployeeByNationalID(ctx context.Context, nationalID string) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
	GetCompensation(ctx context.Context, in GetEmployeeInput) (*contract.Compensation, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, facilities FacilityFinder, contracts ContractFinder, clock calendar.Clock, tx unitofwork.TransactionManager) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{repo: repo, facilities: facilities, contracts: contracts, clock: clock, tx: unitofwork.OrNoop(tx)}
}

// CreateEmployeeInput は従業員作成時の入力です。
type CreateEmployeeInput struct {
	TenantID     string
	FacilityID   string
	Name         string
	NationalID   string
	ShiftPattern ShiftPattern
	Status       *Status
}

// UpdateEmployeeInput は従業員更新時の入力です。nil の項目は変更しません。
type UpdateEmployeeInput struct {
	ID           string
	Name         *string
	ShiftPattern *ShiftPattern
	Status       *Status
}

// DeleteEmployeeInput は従業員削除時の入力です。
type DeleteEmployeeInput struct {
	ID string
}

// GetEmployeeInput は GetEmployee と GetCompensation の入力です。
type GetEmployeeInput struct {
	ID string
}

// ListEmployeesInput は従業員一覧取得時の入力です。
type ListEmployeesInput struct {
	FacilityID string
	PageSize   int
	PageToken  string
	Status     *Status
}

// ListEmployeesResult は従業員一覧の 1 ページです。
type ListEmployeesResult struct {
	Employees     []*Employee
	NextPageToken string
}

// CreateEmployee は既存の施設に警備員を登録します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return nil, ErrInvalidFacilityID
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	nationalID, err := NormalizeNationalID(in.NationalID)
	if err != nil {
		return nil, err
	}

	pattern := in.ShiftPattern
	if pattern == "" {
		pattern = ShiftPatternStandard
	}
	if !isValidShiftPattern(pattern) {
		return nil, ErrInvalidShiftPattern
	}

	status := StatusActive
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureFacilityExists(txCtx, facilityID); err != nil {
			return err
		}
		if err := s.ensureNationalIDNotExists(txCtx, nationalID); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Employee{
			TenantID:     strings.TrimSpace(in.TenantID),
			FacilityID:   facilityID,
			Name:         name,
			NationalID:   nationalID,
			ShiftPattern: pattern,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
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

// UpdateEmployee は従業員の氏名・勤務形態・ステータスを変更します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return ErrInvalidName
			}
			existing.Name = name
		}
		if in.ShiftPattern != nil {
			if !isValidShiftPattern(*in.ShiftPattern) {
				return ErrInvalidShiftPattern
			}
			existing.ShiftPattern = *in.ShiftPattern
		}
		if in.Status != nil {
			if !isValidStatus(*in.Status) {
				return ErrInvalidStatus
			}
			existing.Status = *in.Status
		}
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

// DeleteEmployee は従業員を削除します。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetEmployee は ID で従業員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// GetEmployeeByNationalID は個人番号で従業員を取得します。
func (s *Service) GetEmployeeByNationalID(ctx context.Context, nationalID string) (*Employee, error) {
	normalized, err := NormalizeNationalID(nationalID)
	if err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByNationalID(txCtx, normalized)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は施設の従業員一覧を 1 ページ分返します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return nil, ErrInvalidFacilityID
	}

	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	var statusPtr *Status
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status := *in.Status
		statusPtr = &status
	}

	var (
		employees []*Employee
		nextToken string
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, token, err := s.repo.List(txCtx, ListEmployeesFilter{
			FacilityID: facilityID,
			Status:     statusPtr,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return err
		}
		employees = found
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListEmployeesResult{Employees: employees, NextPageToken: nextToken}, nil
}

// GetCompensation は所属施設の有効な契約から従業員の月額報酬を算出します。
func (s *Service) GetCompensation(ctx context.Context, in GetEmployeeInput) (*contract.Compensation, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result contract.Compensation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if s.contracts == nil {
			return ErrNoContractInForce
		}
		c, err := s.contracts.FindInForceByFacility(txCtx, emp.FacilityID)
		if err != nil {
			if errors.Is(err, contract.ErrContractNotFound) {
				return ErrNoContractInForce
			}
			return err
		}

		comp, err := c.CompensationFor(emp.WorksNightRotation())
		if err != nil {
			return err
		}
		result = comp
		return nil
	}); err != nil {
		return nil, err
	}

	return &result, nil
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

func (s *Service) ensureNationalIDNotExists(ctx context.Context, nationalID string) error {
	emp, err := s.repo.FindByNationalID(ctx, nationalID)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return ErrNationalIDAlreadyExists
	}
	return nil
}

// NormalizeNationalID は個人番号から記号を取り除き、桁数を検証します。
func NormalizeNationalID(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || unicode.IsSpace(r):
		default:
			return "", ErrInvalidNationalID
		}
	}

	digits := b.String()
	if len(digits) != nationalIDDigits {
		return "", ErrInvalidNationalID
	}
	return digits, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

func isValidShiftPattern(pattern ShiftPattern) bool {
	switch pattern {
	case ShiftPatternStandard, ShiftPatternTwelveByThirtySix:
		return true
	default:
		return false
	}
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
