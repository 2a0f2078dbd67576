package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/unitofwork"
)

// Service は割り当てに関するユースケースをまとめます。
type Service struct {
	repo      Repository
	employees EmployeeFinder
	posts     PostFinder
	checker   *Checker
	locker    Locker
	clock     calendar.Clock
	tx        unitofwork.TransactionManager
	log       logrus.FieldLogger
}

// UseCase は割り当てユースケースの公開インターフェースです。
type UseCase interface {
	CreateAllocation(ctx context.Context, in CreateAllocationInput) (*Allocation, error)
	UpdateAllocation(ctx context.Context, in UpdateAllocationInput) (*Allocation, error)
	GetAllocation(ctx context.Context, in GetAllocationInput) (*Allocation, error)
	DeleteAllocation(ctx context.Context, in DeleteAllocationInput) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*Allocation, error)
	ListByPostAndDate(ctx context.Context, postID string, date time.Time) ([]*Allocation, error)
}

// Option は Service を設定します。
type Option func(*Service)

// WithLocker は l を使って従業員ごとの書き込みを直列化します。
func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithLogger は標準の logrus ロガーを置き換えます。
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, employees EmployeeFinder, posts PostFinder, clock calendar.Clock, tx unitofwork.TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	s := &Service{
		repo:      repo,
		employees: employees,
		posts:     posts,
		checker:   NewChecker(repo),
		locker:    noopLocker{},
		clock:     clock,
		tx:        unitofwork.OrNoop(tx),
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAllocationInput は割り当て作成時の入力です。
type CreateAllocationInput struct {
	TenantID   string
	EmployeeID string
	PostID     string
	Date       time.Time
	Status     Status
	Kind       Kind
}

// UpdateAllocationInput は割り当てのステータスと種別を置き換える入力です。
type UpdateAllocationInput struct {
	ID     string
	Status Status
	Kind   Kind
}

// GetAllocationInput は割り当て取得時の入力です。
type GetAllocationInput struct {
	ID string
}

// DeleteAllocationInput は割り当て削除時の入力です。
type DeleteAllocationInput struct {
	ID string
}

// CreateAllocation は従業員を同じ施設のポストに割り当てます。
// 計画的ダブルシフト以外は、同じ従業員の別の割り当てと隣接する日付を拒否します。
func (s *Service) CreateAllocation(ctx context.Context, in CreateAllocationInput) (*Allocation, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}
	postID := strings.TrimSpace(in.PostID)
	if postID == "" {
		return nil, ErrInvalidPostID
	}
	if in.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if !IsValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	if !IsValidKind(in.Kind) {
		return nil, ErrInvalidKind
	}
	date := calendar.Normalize(in.Date)

	var created *Allocation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		emp, err := s.findEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		p, err := s.findPost(txCtx, postID)
		if err != nil {
			return err
		}
		if emp.FacilityID != p.FacilityID {
			return fmt.Errorf("%w: employee facility %s, post facility %s", ErrFacilityMismatch, emp.FacilityID, p.FacilityID)
		}

		if err := s.locker.LockEmployee(txCtx, employeeID); err != nil {
			return err
		}
		if err := s.checker.Check(txCtx, employeeID, date, in.Kind, ""); err != nil {
			s.logRejected(err, employeeID, date, in.Kind)
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Allocation{
			TenantID:   strings.TrimSpace(in.TenantID),
			EmployeeID: employeeID,
			PostID:     postID,
			Date:       date,
			Status:     in.Status,
			Kind:       in.Kind,
			CreatedAt:  now,
			UpdatedAt:  now,
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

// UpdateAllocation は既存の日付で連続日ルールを再検証してからステータスと種別を変更します。
func (s *Service) UpdateAllocation(ctx context.Context, in UpdateAllocationInput) (*Allocation, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if !IsValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}
	if !IsValidKind(in.Kind) {
		return nil, ErrInvalidKind
	}

	var updated *Allocation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if err := s.locker.LockEmployee(txCtx, existing.EmployeeID); err != nil {
			return err
		}
		if err := s.checker.Check(txCtx, existing.EmployeeID, existing.Date, in.Kind, existing.ID); err != nil {
			s.logRejected(err, existing.EmployeeID, existing.Date, in.Kind)
			return err
		}

		existing.Status = in.Status
		existing.Kind = in.Kind
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

// GetAllocation は ID で割り当てを取得します。
func (s *Service) GetAllocation(ctx context.Context, in GetAllocationInput) (*Allocation, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Allocation
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

// DeleteAllocation は割り当てを削除します。
func (s *Service) DeleteAllocation(ctx context.Context, in DeleteAllocationInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// ListByEmployee は従業員の割り当てを日付順で返します。
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]*Allocation, error) {
	id := strings.TrimSpace(employeeID)
	if id == "" {
		return nil, ErrInvalidEmployeeID
	}

	var found []*Allocation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByEmployee(txCtx, id)
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

// ListByPostAndDate は指定日にポストへ割り当てられた一覧を返します。
func (s *Service) ListByPostAndDate(ctx context.Context, postID string, date time.Time) ([]*Allocation, error) {
	id := strings.TrimSpace(postID)
	if id == "" {
		return nil, ErrInvalidPostID
	}
	if date.IsZero() {
		return nil, ErrInvalidDate
	}

	var found []*Allocation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByPostAndDate(txCtx, id, calendar.Normalize(date))
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

func (s *Service) findEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	if s.employees == nil {
		return nil, ErrEmployeeNotFound
	}
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

func (s *Service) findPost(ctx context.Context, id string) (*post.WorkPost, error) {
	if s.posts == nil {
		return nil, ErrPostNotFound
	}
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) logRejected(err error, employeeID string, date time.Time, kind Kind) {
	var adjacent *AdjacentDayError
	if !errors.As(err, &adjacent) {
		return
	}
	s.log.WithFields(logrus.Fields{
		"employee_id":   employeeID,
		"date":          date.Format(calendar.DateLayout),
		"kind":          kind,
		"conflict_id":   adjacent.ConflictID,
		"conflict_date": adjacent.ConflictDate.Format(calendar.DateLayout),
	}).Info("allocation rejected by adjacent-day rule")
}
