package allocation

import (
	"context"
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
)

// Repository は割り当ての永続化を担います。
type Repository interface {
	Create(ctx context.Context, allocation *Allocation) (*Allocation, error)
	Update(ctx context.Context, allocation *Allocation) (*Allocation, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Allocation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Allocation, error)
	ListByPostAndDate(ctx context.Context, postID string, date time.Time) ([]*Allocation, error)
}

// EmployeeFinder は割り当て対象の従業員を取得します。
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

// PostFinder は割り当て先のポストを取得します。
type PostFinder interface {
	FindByID(ctx context.Context, id string) (*post.WorkPost, error)
}

// Locker は作業単位が終わるまで、従業員ごとの割り当て書き込みを直列化します。
type Locker interface {
	LockEmployee(ctx context.Context, employeeID string) error
}

type noopLocker struct{}

func (noopLocker) LockEmployee(context.Context, string) error {
	return nil
}
