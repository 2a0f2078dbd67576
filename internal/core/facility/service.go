package facility

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/unitofwork"
)

const taxIDDigits = 14

// Service は施設に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock calendar.Clock
	tx    unitofwork.TransactionManager
}

// UseCase は施設ユースケースの公開インターフェースです。
type UseCase interface {
	CreateFacility(ctx context.Context, in CreateFacilityInput) (*Facility, error)
	GetFacility(ctx context.Context, in GetFacilityInput) (*Facility, error)
	GetFacilityByTaxID(ctx context.Context, taxID string) (*Facility, error)
	DeleteFacility(ctx context.Context, in DeleteFacilityInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock calendar.Clock, tx unitofwork.TransactionManager) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{repo: repo, clock: clock, tx: unitofwork.OrNoop(tx)}
}

// CreateFacilityInput は施設作成時の入力です。
type CreateFacilityInput struct {
	TenantID            string
	Name                string
	TaxID               string
	Address             *string
	IdealHeadcount      int
	ShiftChangeoverTime calendar.TimeOfDay
}

// GetFacilityInput は施設取得時の入力です。
type GetFacilityInput struct {
	ID string
}

// DeleteFacilityInput は施設削除時の入力です。
type DeleteFacilityInput struct {
	ID string
}

// New は in を検証し、now を作成日時とする未保存の Facility を生成します。
func New(in CreateFacilityInput, now time.Time) (*Facility, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	taxID, err := NormalizeTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}

	if in.IdealHeadcount <= 0 {
		return nil, ErrInvalidIdealHeadcount
	}

	return &Facility{
		TenantID:            strings.TrimSpace(in.TenantID),
		Name:                name,
		TaxID:               taxID,
		Address:             normalizeAddress(in.Address),
		IdealHeadcount:      in.IdealHeadcount,
		ShiftChangeoverTime: in.ShiftChangeoverTime,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// CreateFacility は施設を検証して保存します。
func (s *Service) CreateFacility(ctx context.Context, in CreateFacilityInput) (*Facility, error) {
	f, err := New(in, s.clock.Now())
	if err != nil {
		return nil, err
	}

	var created *Facility
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureTaxIDNotExists(txCtx, f.TaxID); err != nil {
			return err
		}

		result, err := s.repo.Create(txCtx, f)
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

// GetFacility は ID で施設を取得します。
func (s *Service) GetFacility(ctx context.Context, in GetFacilityInput) (*Facility, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Facility
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

// GetFacilityByTaxID は法人番号で施設を取得します。
func (s *Service) GetFacilityByTaxID(ctx context.Context, taxID string) (*Facility, error) {
	normalized, err := NormalizeTaxID(taxID)
	if err != nil {
		return nil, err
	}

	var found *Facility
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByTaxID(txCtx, normalized)
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

// DeleteFacility は施設を削除します。
func (s *Service) DeleteFacility(ctx context.Context, in DeleteFacilityInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

func (s *Service) ensureTaxIDNotExists(ctx context.Context, taxID string) error {
	f, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil && !errors.Is(err, ErrFacilityNotFound) {
		return err
	}
	if f != nil {
		return ErrTaxIDAlreadyExists
	}
	return nil
}

// NormalizeTaxID は法人番号から記号を取り除き、桁数を検証します。
func NormalizeTaxID(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '/' || r == '-' || unicode.IsSpace(r):
		default:
			return "", ErrInvalidTaxID
		}
	}

	digits := b.String()
	if len(digits) != taxIDDigits {
		return "", ErrInvalidTaxID
	}
	return digits, nil
}

func normalizeAddress(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
