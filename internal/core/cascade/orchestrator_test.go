package cascade

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type memoryStore struct {
	facilities map[string]*facility.Facility
	contracts  map[string]*contract.Contract
	posts      map[string]*post.WorkPost
	seq        int

	failContract  error
	failPostAfter int
	failDelete    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		facilities:    make(map[string]*facility.Facility),
		contracts:     make(map[string]*contract.Contract),
		posts:         make(map[string]*post.WorkPost),
		failPostAfter: -1,
	}
}

func (m *memoryStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memoryStore) CreateFacility(_ context.Context, in facility.CreateFacilityInput) (*facility.Facility, error) {
	f, err := facility.New(in, time.Time{})
	if err != nil {
		return nil, err
	}
	f.ID = m.nextID("facility")
	m.facilities[f.ID] = f
	return f, nil
}

func (m *memoryStore) DeleteFacility(_ context.Context, in facility.DeleteFacilityInput) error {
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.facilities[in.ID]; !ok {
		return facility.ErrFacilityNotFound
	}
	delete(m.facilities, in.ID)
	return nil
}

func (m *memoryStore) CreateContract(_ context.Context, in contract.CreateContractInput) (*contract.Contract, error) {
	if m.failContract != nil {
		return nil, m.failContract
	}
	c, err := contract.Prepare(in)
	if err != nil {
		return nil, err
	}
	c.ID = m.nextID("contract")
	m.contracts[c.ID] = c
	return c, nil
}

func (m *memoryStore) DeleteContract(_ context.Context, in contract.DeleteContractInput) error {
	if _, ok := m.contracts[in.ID]; !ok {
		return contract.ErrContractNotFound
	}
	delete(m.contracts, in.ID)
	return nil
}

func (m *memoryStore) CreatePost(_ context.Context, in post.CreatePostInput) (*post.WorkPost, error) {
	if m.failPostAfter >= 0 && len(m.posts) >= m.failPostAfter {
		return nil, errors.New("disk full")
	}
	if err := post.ValidateWindow(in.ShiftStart, in.ShiftEnd); err != nil {
		return nil, err
	}
	p := &post.WorkPost{
		ID:                m.nextID("post"),
		FacilityID:        in.FacilityID,
		ShiftStart:        in.ShiftStart,
		ShiftEnd:          in.ShiftEnd,
		AllowsDoubleShift: in.AllowsDoubleShift,
	}
	m.posts[p.ID] = p
	return p, nil
}

func (m *memoryStore) DeletePost(_ context.Context, in post.DeletePostInput) error {
	if _, ok := m.posts[in.ID]; !ok {
		return post.ErrPostNotFound
	}
	delete(m.posts, in.ID)
	return nil
}

var today = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func validInput() Input {
	return Input{
		Facility: facility.CreateFacilityInput{
			Name:                "Residencial Aurora",
			TaxID:               "12.345.678/0001-90",
			IdealHeadcount:      12,
			ShiftChangeoverTime: calendar.MustTimeOfDay(7, 0),
		},
		Contract: ContractInput{
			Terms: contract.Terms{
				DailyRate:                 decimal.NewFromInt(100),
				NightShiftSurchargeRate:   decimal.RequireFromString("0.2"),
				MonthlyExtraBenefits:      decimal.NewFromInt(3600),
				TaxRate:                   decimal.RequireFromString("0.15"),
				EmployeeCount:             12,
				ProfitMarginRate:          decimal.RequireFromString("0.20"),
				AbsenceCoverageMarginRate: decimal.RequireFromString("0.10"),
				StartDate:                 time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:                   time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC),
			},
		},
		AutoCreatePosts: true,
		PostCount:       2,
	}
}

func newOrchestrator(store *memoryStore) (*Orchestrator, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	return NewOrchestrator(store, store, store, &stubClock{now: today}, nil, logger), hook
}

func TestValidate_OrderedChecks(t *testing.T) {
	t.Parallel()

	o, _ := newOrchestrator(newMemoryStore())

	tests := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{
			name: "headcount mismatch wins over divisibility",
			mutate: func(in *Input) {
				in.Facility.IdealHeadcount = 10
				in.PostCount = 3
			},
			want: ErrEmployeeCountMismatch,
		},
		{
			name:   "zero posts",
			mutate: func(in *Input) { in.PostCount = 0 },
			want:   ErrInvalidPostCount,
		},
		{
			name: "not divisible",
			mutate: func(in *Input) {
				in.Facility.IdealHeadcount = 10
				in.Contract.Terms.EmployeeCount = 10
				in.PostCount = 3
			},
			want: ErrHeadcountNotDivisible,
		},
		{
			name: "start in the past",
			mutate: func(in *Input) {
				in.Contract.Terms.StartDate = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
			},
			want: ErrStartDateInPast,
		},
		{
			name: "end equal to start",
			mutate: func(in *Input) {
				in.Contract.Terms.EndDate = in.Contract.Terms.StartDate
			},
			want: ErrEndNotAfterStart,
		},
		{
			name: "posts shorter than 12h",
			mutate: func(in *Input) {
				in.PostCount = 4
			},
			want: ErrPostSpanMismatch,
		},
		{
			name:   "facility fields",
			mutate: func(in *Input) { in.Facility.TaxID = "123" },
			want:   facility.ErrInvalidTaxID,
		},
		{
			name:   "contract margins",
			mutate: func(in *Input) { in.Contract.Terms.TaxRate = decimal.RequireFromString("0.70") },
			want:   pricing.ErrMarginsTooHigh,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tc.mutate(&in)
			assert.ErrorIs(t, o.Validate(in), tc.want)
		})
	}
}

func TestValidateCascadeCreation(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	o, _ := newOrchestrator(store)

	ok := o.ValidateCascadeCreation(context.Background(), validInput())
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.ErrorMessage)

	in := validInput()
	in.Facility.IdealHeadcount = 10
	bad := o.ValidateCascadeCreation(context.Background(), in)
	assert.False(t, bad.Valid)
	assert.Contains(t, bad.ErrorMessage, "(12)")
	assert.Contains(t, bad.ErrorMessage, "(10)")

	assert.Empty(t, store.facilities, "dry run must not write")
}

func TestValidate_StartTodayAllowed(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-3", -3*60*60)
	o := NewOrchestrator(newMemoryStore(), newMemoryStore(), newMemoryStore(),
		&stubClock{now: time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC).In(loc)}, nil, nil)

	assert.NoError(t, o.Validate(validInput()))
}

func TestCreateCascade_Success(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	o, hook := newOrchestrator(store)

	result, err := o.CreateCascade(context.Background(), validInput())
	require.NoError(t, err)

	require.NotNil(t, result.Facility)
	require.NotNil(t, result.Contract)
	assert.Equal(t, result.Facility.ID, result.Contract.FacilityID)
	assert.Equal(t, "72000.00", result.Contract.MonthlyTotalValue.StringFixed(2))

	require.Len(t, result.Posts, 2)
	assert.Equal(t, "07:00", result.Posts[0].ShiftStart.String())
	assert.Equal(t, "19:00", result.Posts[0].ShiftEnd.String())
	assert.Equal(t, "19:00", result.Posts[1].ShiftStart.String())
	assert.Equal(t, "07:00", result.Posts[1].ShiftEnd.String())
	for _, p := range result.Posts {
		assert.True(t, p.AllowsDoubleShift)
		assert.Equal(t, result.Facility.ID, p.FacilityID)
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "cascade created", hook.LastEntry().Message)
}

func TestCreateCascade_WithoutPosts(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	o, _ := newOrchestrator(store)

	in := validInput()
	in.AutoCreatePosts = false
	in.PostCount = 0

	result, err := o.CreateCascade(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, result.Posts)
	assert.Empty(t, store.posts)
}

func TestCreateCascade_ValidationFailsBeforeWrites(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	o, _ := newOrchestrator(store)

	in := validInput()
	in.Facility.IdealHeadcount = 10

	_, err := o.CreateCascade(context.Background(), in)
	var mismatch *HeadcountMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 12, mismatch.EmployeeCount)
	assert.Equal(t, 10, mismatch.IdealHeadcount)
	assert.True(t, domainerr.IsConflict(err))
	assert.Empty(t, store.facilities)
}

func TestCreateCascade_ContractFailureCompensates(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.failContract = errors.New("connection reset")
	o, hook := newOrchestrator(store)

	_, err := o.CreateCascade(context.Background(), validInput())

	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, StepContract, integrity.Step)
	assert.True(t, domainerr.IsIntegrity(err))
	assert.NoError(t, integrity.Compensation)
	assert.Empty(t, store.facilities, "facility must be removed")
	assert.Equal(t, "cascade creation failed", hook.LastEntry().Message)
}

func TestCreateCascade_PostFailureCompensates(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.failPostAfter = 1
	o, _ := newOrchestrator(store)

	_, err := o.CreateCascade(context.Background(), validInput())

	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, StepPosts, integrity.Step)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, store.facilities)
	assert.Empty(t, store.contracts)
	assert.Empty(t, store.posts)
}

func TestCreateCascade_ReportsCompensationFailure(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.failContract = errors.New("connection reset")
	store.failDelete = errors.New("database unavailable")
	o, _ := newOrchestrator(store)

	_, err := o.CreateCascade(context.Background(), validInput())

	var integrity *IntegrityError
	require.True(t, errors.As(err, &integrity))
	require.Error(t, integrity.Compensation)
	assert.Contains(t, err.Error(), "compensation failed")
}
