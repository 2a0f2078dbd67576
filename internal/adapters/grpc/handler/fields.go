package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/pricing"
)

// fields は Struct リクエストから型付きの値を取り出します。キーの欠落と JSON の null は同じく扱います。
type fields map[string]*structpb.Value

func fieldsOf(s *structpb.Struct) fields {
	if s == nil {
		return fields{}
	}
	return fields(s.GetFields())
}

func (f fields) value(key string) (*structpb.Value, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func (f fields) has(key string) bool {
	_, ok := f.value(key)
	return ok
}

func (f fields) object(key string) (fields, error) {
	v, ok := f.value(key)
	if !ok {
		return fields{}, nil
	}
	s := v.GetStructValue()
	if s == nil {
		return nil, fmt.Errorf("%s: expected an object", key)
	}
	return fieldsOf(s), nil
}

func (f fields) str(key string) (string, error) {
	v, ok := f.value(key)
	if !ok {
		return "", nil
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		return "", fmt.Errorf("%s: expected a string", key)
	}
	return strings.TrimSpace(s.StringValue), nil
}

func (f fields) optionalStr(key string) (*string, error) {
	if !f.has(key) {
		return nil, nil
	}
	s, err := f.str(key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (f fields) boolean(key string) (bool, error) {
	v, ok := f.value(key)
	if !ok {
		return false, nil
	}
	b, isBool := v.GetKind().(*structpb.Value_BoolValue)
	if !isBool {
		return false, fmt.Errorf("%s: expected a boolean", key)
	}
	return b.BoolValue, nil
}

func (f fields) integer(key string) (int, error) {
	v, ok := f.value(key)
	if !ok {
		return 0, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("%s: expected an integer between %d and %d", key, math.MinInt32, math.MaxInt32)
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(k.StringValue), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%s: expected an integer between %d and %d", key, math.MinInt32, math.MaxInt32)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s: expected an integer", key)
	}
}

// decimal は 10 進数文字列と JSON の数値を受け付けます。値がない場合は 0 です。
func (f fields) decimal(key string) (decimal.Decimal, error) {
	d, err := f.optionalDecimal(key)
	if err != nil || d == nil {
		return decimal.Zero, err
	}
	return *d, nil
}

func (f fields) optionalDecimal(key string) (*decimal.Decimal, error) {
	v, ok := f.value(key)
	if !ok {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(strings.TrimSpace(k.StringValue))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid decimal %q", key, k.StringValue)
		}
		return &d, nil
	case *structpb.Value_NumberValue:
		d := decimal.NewFromFloat(k.NumberValue)
		return &d, nil
	default:
		return nil, fmt.Errorf("%s: expected a decimal", key)
	}
}

func (f fields) date(key string) (time.Time, error) {
	raw, err := f.str(key)
	if err != nil {
		return time.Time{}, err
	}
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", key)
	}
	d, err := calendar.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func (f fields) timeOfDay(key string) (calendar.TimeOfDay, error) {
	raw, err := f.str(key)
	if err != nil {
		return calendar.TimeOfDay{}, err
	}
	if raw == "" {
		return calendar.TimeOfDay{}, fmt.Errorf("%s is required", key)
	}
	t, err := calendar.ParseTimeOfDay(raw)
	if err != nil {
		return calendar.TimeOfDay{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(pricing.MoneyPlaces)
}
