package facility

import "github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"

var (
	// ErrFacilityNotFound は施設が存在しない場合に返却されます。
	ErrFacilityNotFound = domainerr.NotFound("facility: not found")
	// ErrTaxIDAlreadyExists は法人番号が他の施設と重複する場合に返却されます。
	ErrTaxIDAlreadyExists = domainerr.Conflict("facility: tax id already exists")
	// ErrInvalidID は施設 ID が空の場合に返却されます。
	ErrInvalidID = domainerr.Validation("facility: invalid id")
	// ErrInvalidName は名称が空の場合に返却されます。
	ErrInvalidName = domainerr.Validation("facility: invalid name")
	// ErrInvalidTaxID は法人番号が 14 桁でない場合に返却されます。
	ErrInvalidTaxID = domainerr.Validation("facility: tax id must have 14 digits")
	// ErrInvalidIdealHeadcount は理想人数が正でない場合に返却されます。
	ErrInvalidIdealHeadcount = domainerr.Validation("facility: ideal headcount must be greater than zero")
)
