package gis

import "errors"

var (
	ErrInvalidCategory     = errors.New("gis: invalid layer category")
	ErrInvalidPropertyType = errors.New("gis: invalid property type")
	ErrInvalidTaxStatus    = errors.New("gis: invalid tax status")
	ErrUnknownLayer        = errors.New("gis: unknown layer")
	ErrDuplicateLayer      = errors.New("gis: duplicate layer id")
	ErrUnknownSession      = errors.New("gis: unknown session")
	ErrSessionClosed       = errors.New("gis: session closed")
	ErrFrameUnreachable    = errors.New("gis: frame window unreachable")
	ErrMalformedMessage    = errors.New("gis: malformed frame message")
	ErrUnknownChart        = errors.New("gis: unknown chart")
)
