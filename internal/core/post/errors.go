package post

import "github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/domainerr"

var (
	ErrPostNotFound      = domainerr.NotFound("post: not found")
	ErrFacilityNotFound  = domainerr.NotFound("post: facility not found")
	ErrInvalidID         = domainerr.Validation("post: invalid id")
	ErrInvalidFacilityID = domainerr.Validation("post: invalid facility id")
	ErrInvalidShiftSpan  = domainerr.Validation("post: shift must last exactly 12h")
	ErrInvalidPostCount  = domainerr.Validation("post: post count must be greater than zero")
	ErrUnevenPartition   = domainerr.Validation("post: a day cannot be split evenly into that many posts")
)
