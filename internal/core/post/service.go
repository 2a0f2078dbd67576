package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/unitofwork"
)

// Service は勤務ポストに関するユースケースをまとめます。
type Service struct {
	repo       Repository
	facilities FacilityFinder
	clock      calendar.Clock
	tx         unitofwork.TransactionManager
}

// UseCase は勤務ポストユースケースの公開インターフェースです。
type UseCase interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*WorkPost, error)
	GetPost(ctx context.Context, in GetPostInput) (*WorkPost, error)
	ListPosts(ctx context.Context, in ListPostsInput) ([]*WorkPost, error)
	UpdatePost(ctx context.Context, in UpdatePostInput) (*WorkPost, error)
	DeletePost(ctx context.Context, in DeletePostInput) error
	GetPostCapacity(ctx context.Context, in GetPostInput) (*Capacity, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, facilities FacilityFinder, clock calendar.Clock, tx unitofwork.TransactionManager) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{repo: repo, facilities: facilities, clock: clock, tx: unitofwork.OrNoop(tx)}
}

// CreatePostInput はポスト作成時の入力です。
type CreatePostInput struct {
	FacilityID        string
	ShiftStart        calendar.TimeOfDay
	ShiftEnd          calendar.TimeOfDay
	AllowsDoubleShift bool
}

// UpdatePostInput はポストの時間帯とダブルシフト可否を置き換える入力です。
type UpdatePostInput struct {
	ID                string
	ShiftStart        calendar.TimeOfDay
	ShiftEnd          calendar.TimeOfDay
	AllowsDoubleShift bool
}

// GetPostInput は GetPost と GetPostCapacity の入力です。
type GetPostInput struct {
	ID string
}

// ListPostsInput はポスト一覧取得時の入力です。
type ListPostsInput struct {
	FacilityID string
}

// DeletePostInput はポスト削除時の入力です。
type DeletePostInput struct {
	ID string
}

// CreatePost は既存の施設に対してポストを検証・保存します。
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (*WorkPost, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return nil, ErrInvalidFacilityID
	}
	if err := ValidateWindow(in.ShiftStart, in.ShiftEnd); err != nil {
		return nil, err
	}

	var created *WorkPost
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.findFacility(txCtx, facilityID); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &WorkPost{
			FacilityID:        facilityID,
			ShiftStart:        in.ShiftStart,
			ShiftEnd:          in.ShiftEnd,
			AllowsDoubleShift: in.AllowsDoubleShift,
			CreatedAt:         now,
			UpdatedAt:         now,
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

// UpdatePost はポストの時間帯とダブルシフト可否を置き換えます。
func (s *Service) UpdatePost(ctx context.Context, in UpdatePostInput) (*WorkPost, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if err := ValidateWindow(in.ShiftStart, in.ShiftEnd); err != nil {
		return nil, err
	}

	var updated *WorkPost
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.ShiftStart = in.ShiftStart
		existing.ShiftEnd = in.ShiftEnd
		existing.AllowsDoubleShift = in.AllowsDoubleShift
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

// GetPost は ID でポストを取得します。
func (s *Service) GetPost(ctx context.Context, in GetPostInput) (*WorkPost, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *WorkPost
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

// ListPosts は施設のポスト一覧を返します。
func (s *Service) ListPosts(ctx context.Context, in ListPostsInput) ([]*WorkPost, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return nil, ErrInvalidFacilityID
	}

	var posts []*WorkPost
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByFacility(txCtx, facilityID)
		if err != nil {
			return err
		}
		posts = result
		return nil
	}); err != nil {
		return nil, err
	}

	return posts, nil
}

// DeletePost は他のポストに影響を与えずにポストを削除します。
func (s *Service) DeletePost(ctx context.Context, in DeletePostInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetPostCapacity は施設の現在の理想人数とポスト数からポストの配置目標を算出します。
func (s *Service) GetPostCapacity(ctx context.Context, in GetPostInput) (*Capacity, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var capacity Capacity
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		p, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		f, err := s.findFacility(txCtx, p.FacilityID)
		if err != nil && !errors.Is(err, ErrFacilityNotFound) {
			return err
		}

		count, err := s.repo.CountByFacility(txCtx, p.FacilityID)
		if err != nil {
			return err
		}

		capacity = CapacityOf(f, count, p)
		return nil
	}); err != nil {
		return nil, err
	}

	return &capacity, nil
}

func (s *Service) findFacility(ctx context.Context, facilityID string) (*facility.Facility, error) {
	if s.facilities == nil {
		return nil, ErrFacilityNotFound
	}
	f, err := s.facilities.FindByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facility.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return f, nil
}
