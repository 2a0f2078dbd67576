// Package cascade は施設・契約・初期ポストを 1 つの操作として作成します。
package cascade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/unitofwork"
)

// FacilityStore は施設の作成と削除を行います。
type FacilityStore interface {
	CreateFacility(ctx context.Context, in facility.CreateFacilityInput) (*facility.Facility, error)
	DeleteFacility(ctx context.Context, in facility.DeleteFacilityInput) error
}

// ContractStore は契約の作成と削除を行います。
type ContractStore interface {
	CreateContract(ctx context.Context, in contract.CreateContractInput) (*contract.Contract, error)
	DeleteContract(ctx context.Context, in contract.DeleteContractInput) error
}

// PostStore はポストの作成と削除を行います。
type PostStore interface {
	CreatePost(ctx context.Context, in post.CreatePostInput) (*post.WorkPost, error)
	DeletePost(ctx context.Context, in post.DeletePostInput) error
}

// UseCase はカスケードの公開インターフェースです。
type UseCase interface {
	ValidateCascadeCreation(ctx context.Context, in Input) *ValidationResult
	CreateCascade(ctx context.Context, in Input) (*Result, error)
}

// ContractInput はカスケードの契約部分です。施設の参照はオーケストレーターが設定します。
type ContractInput struct {
	Terms             contract.Terms
	MonthlyTotalValue *decimal.Decimal
	Status            *contract.Status
}

// Input はカスケードで作成するもの全体を表します。
type Input struct {
	Facility        facility.CreateFacilityInput
	Contract        ContractInput
	AutoCreatePosts bool
	PostCount       int
}

// Result はカスケードで作成された集約を保持します。
type Result struct {
	Facility *facility.Facility
	Contract *contract.Contract
	Posts    []*post.WorkPost
}

// ValidationResult はドライランの結果です。
type ValidationResult struct {
	Valid        bool
	ErrorMessage string
}

// Orchestrator はカスケードを実行します。
type Orchestrator struct {
	facilities FacilityStore
	contracts  ContractStore
	posts      PostStore
	clock      calendar.Clock
	tx         unitofwork.TransactionManager
	log        logrus.FieldLogger
}

// NewOrchestrator は Orchestrator を生成します。log が nil の場合は標準の logrus ロガーを使います。
func NewOrchestrator(
	facilities FacilityStore,
	contracts ContractStore,
	posts PostStore,
	clock calendar.Clock,
	tx unitofwork.TransactionManager,
	log logrus.FieldLogger,
) *Orchestrator {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{
		facilities: facilities,
		contracts:  contracts,
		posts:      posts,
		clock:      clock,
		tx:         unitofwork.OrNoop(tx),
		log:        log,
	}
}

// Validate はドライランと実作成で共通の事前チェックを行います。最初に失敗したチェックの結果を返します。
func (o *Orchestrator) Validate(in Input) error {
	terms := in.Contract.Terms

	if terms.EmployeeCount != in.Facility.IdealHeadcount {
		return &HeadcountMismatchError{EmployeeCount: terms.EmployeeCount, IdealHeadcount: in.Facility.IdealHeadcount}
	}

	if in.AutoCreatePosts {
		if in.PostCount <= 0 {
			return ErrInvalidPostCount
		}
		if in.Facility.IdealHeadcount%in.PostCount != 0 {
			return fmt.Errorf("%w: %d employees over %d posts", ErrHeadcountNotDivisible, in.Facility.IdealHeadcount, in.PostCount)
		}
	}

	today := calendar.Today(o.clock)
	start := calendar.Normalize(terms.StartDate)
	end := calendar.Normalize(terms.EndDate)
	if start.Before(today) {
		return ErrStartDateInPast
	}
	if !end.After(start) {
		return ErrEndNotAfterStart
	}

	if in.AutoCreatePosts && calendar.Day/time.Duration(in.PostCount) != post.ShiftSpan {
		return fmt.Errorf("%w: %d posts", ErrPostSpanMismatch, in.PostCount)
	}

	if _, err := facility.New(in.Facility, o.clock.Now()); err != nil {
		return err
	}
	if in.Contract.Status != nil && !contract.IsValidStatus(*in.Contract.Status) {
		return contract.ErrInvalidStatus
	}
	if _, _, err := contract.ResolveTerms(terms, in.Contract.MonthlyTotalValue); err != nil {
		return err
	}
	return nil
}

// ValidateCascadeCreation は副作用のない CreateCascade のドライランです。
func (o *Orchestrator) ValidateCascadeCreation(_ context.Context, in Input) *ValidationResult {
	if err := o.Validate(in); err != nil {
		return &ValidationResult{Valid: false, ErrorMessage: err.Error()}
	}
	return &ValidationResult{Valid: true}
}

// CreateCascade は in を検証したうえで施設と契約を作成し、指定があれば交代時刻から
// 1 日を均等に分けたポストを作成します。書き込みは 1 つの作業単位で行い、
// 後続ステップが失敗した場合は先行ステップの結果も明示的に削除します。
func (o *Orchestrator) CreateCascade(ctx context.Context, in Input) (*Result, error) {
	if err := o.Validate(in); err != nil {
		return nil, err
	}

	var result Result
	err := o.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		f, err := o.facilities.CreateFacility(txCtx, in.Facility)
		if err != nil {
			return err
		}
		result.Facility = f

		c, err := o.contracts.CreateContract(txCtx, contract.CreateContractInput{
			FacilityID:        f.ID,
			TenantID:          f.TenantID,
			Terms:             in.Contract.Terms,
			MonthlyTotalValue: in.Contract.MonthlyTotalValue,
			Status:            in.Contract.Status,
		})
		if err != nil {
			return &IntegrityError{Step: StepContract, Err: err}
		}
		result.Contract = c

		if !in.AutoCreatePosts {
			return nil
		}

		windows, err := post.Partition(f.ShiftChangeoverTime, in.PostCount)
		if err != nil {
			return &IntegrityError{Step: StepPosts, Err: err}
		}
		for _, w := range windows {
			p, err := o.posts.CreatePost(txCtx, post.CreatePostInput{
				FacilityID:        f.ID,
				ShiftStart:        w.Start,
				ShiftEnd:          w.End,
				AllowsDoubleShift: true,
			})
			if err != nil {
				return &IntegrityError{Step: StepPosts, Err: err}
			}
			result.Posts = append(result.Posts, p)
		}
		return nil
	})
	if err != nil {
		var integrity *IntegrityError
		if errors.As(err, &integrity) {
			integrity.Compensation = o.compensate(ctx, &result)
			o.log.WithError(integrity.Err).WithFields(logrus.Fields{
				"step":        integrity.Step,
				"facility_id": result.Facility.ID,
			}).Error("cascade creation failed")
		}
		return nil, err
	}

	o.log.WithFields(logrus.Fields{
		"facility_id": result.Facility.ID,
		"contract_id": result.Contract.ID,
		"posts":       len(result.Posts),
	}).Info("cascade created")

	return &result, nil
}

// compensate は失敗したカスケードが残したものを新しい順に削除します。
// ロールバック後は行が存在しないのが通常です。
func (o *Orchestrator) compensate(ctx context.Context, created *Result) error {
	var errs []error
	keep := func(err error) {
		if err != nil && !domainerr.IsNotFound(err) {
			errs = append(errs, err)
		}
	}

	for i := len(created.Posts) - 1; i >= 0; i-- {
		keep(o.posts.DeletePost(ctx, post.DeletePostInput{ID: created.Posts[i].ID}))
	}
	if created.Contract != nil {
		keep(o.contracts.DeleteContract(ctx, contract.DeleteContractInput{ID: created.Contract.ID}))
	}
	if created.Facility != nil {
		keep(o.facilities.DeleteFacility(ctx, facility.DeleteFacilityInput{ID: created.Facility.ID}))
	}
	return errors.Join(errs...)
}
