// Package calendar はコア層で共有する時刻まわりの基本型を提供します。
// 差し替え可能な時計、時刻を持たない暦日、シフト枠に使う時刻を扱います。
package calendar

import (
	"fmt"
	"time"
)

// DateLayout は暦日の通信・保存用フォーマットです。
const DateLayout = "2006-01-02"

// Day は 1 日の長さです。
const Day = 24 * time.Hour

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

// SystemClock は Location (未設定なら UTC) でシステム時刻を返します。
// 「今日」がどの暦日になるかは Location で決まります。
type SystemClock struct {
	Location *time.Location
}

// Now は時計のロケーションでの現在時刻を返します。
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// DateOf は loc から見た t の暦日を UTC の 0 時として返します。loc が nil の場合は UTC です。
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Today は時計自身のロケーションでの今日の日付を返します。
func Today(clock Clock) time.Time {
	now := clock.Now()
	return DateOf(now, now.Location())
}

// Normalize は暦日を変えずに時刻部分を取り除きます。
func Normalize(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays は暦日を n 日ずらします。
func AddDays(d time.Time, n int) time.Time {
	return Normalize(d).AddDate(0, 0, n)
}

// SameDate は a と b が同じ暦日かどうかを返します。
func SameDate(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

// ParseDate は YYYY-MM-DD 形式の日付を解析します。
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: parse date %q: %w", raw, err)
	}
	return d, nil
}

// TimeOfDay は分単位の時刻です。
type TimeOfDay struct {
	minutes int
}

// NewTimeOfDay は時と分から TimeOfDay を生成します。
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("calendar: invalid time of day %02d:%02d", hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// MustTimeOfDay は定数入力向けの NewTimeOfDay です。
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay は HH:MM または HH:MM:SS を受け付けます。秒は切り捨てます。
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return NewTimeOfDay(parsed.Hour(), parsed.Minute())
		}
	}
	return TimeOfDay{}, fmt.Errorf("calendar: invalid time of day %q", raw)
}

// TimeOfDayFromDuration は 0 時からの経過時間を日をまたいで折り返しつつ変換します。
func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	m := int(d/time.Minute) % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return TimeOfDay{minutes: m}
}

// Hour は時を返します。
func (t TimeOfDay) Hour() int { return t.minutes / 60 }

// Minute は分を返します。
func (t TimeOfDay) Minute() int { return t.minutes % 60 }

// SinceMidnight は 0 時からの経過時間を返します。
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t.minutes) * time.Minute
}

// Add は d だけ時刻を進め、0 時をまたぐ場合は折り返します。
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return TimeOfDayFromDuration(t.SinceMidnight() + d)
}

// Until は t から end までの長さを返します。end が t 以前なら 0 時をまたぐものとし、
// 同じ値の場合は丸 1 日になります。
func (t TimeOfDay) Until(end TimeOfDay) time.Duration {
	if end.minutes > t.minutes {
		return end.SinceMidnight() - t.SinceMidnight()
	}
	return Day - (t.SinceMidnight() - end.SinceMidnight())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
