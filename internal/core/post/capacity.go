package post

import (
	"time"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
)

// Capacity は 1 つのポストの配置目標です。要求のたびに所属施設から算出します。
type Capacity struct {
	IdealEmployeeCount      int
	MaxCapacityWithDoubling int
}

// IdealPerPost は施設の理想人数をポスト数で割ります。ポストがなければ 0 です。
func IdealPerPost(idealHeadcount, postCount int) int {
	if postCount <= 0 || idealHeadcount <= 0 {
		return 0
	}
	return idealHeadcount / postCount
}

// MaxCapacity はダブルシフトを許可した場合にポストが受け入れられる人数です。
func MaxCapacity(idealPerPost int, allowsDoubleShift bool) int {
	if allowsDoubleShift {
		return idealPerPost * 2
	}
	return idealPerPost
}

// CapacityOf は施設と現在のポスト数から p の容量を算出します。facility が nil の場合は 0 です。
func CapacityOf(f *facility.Facility, postCount int, p *WorkPost) Capacity {
	if f == nil || p == nil {
		return Capacity{}
	}
	ideal := IdealPerPost(f.IdealHeadcount, postCount)
	return Capacity{
		IdealEmployeeCount:      ideal,
		MaxCapacityWithDoubling: MaxCapacity(ideal, p.AllowsDoubleShift),
	}
}

// Window はシフトの時間帯です。
type Window struct {
	Start calendar.TimeOfDay
	End   calendar.TimeOfDay
}

// Partition は 1 日を postCount 個の等しい分単位の時間帯に分割します。最初の時間帯は changeover から始まります。
func Partition(changeover calendar.TimeOfDay, postCount int) ([]Window, error) {
	if postCount <= 0 {
		return nil, ErrInvalidPostCount
	}
	if (calendar.Day/time.Minute)%time.Duration(postCount) != 0 {
		return nil, ErrUnevenPartition
	}

	span := calendar.Day / time.Duration(postCount)
	windows := make([]Window, 0, postCount)
	start := changeover
	for i := 0; i < postCount; i++ {
		end := start.Add(span)
		windows = append(windows, Window{Start: start, End: end})
		start = end
	}
	return windows, nil
}
