package logger

import (
	"go.uber.org/zap"
)

type Field = zap.Field

var (
	Any        = zap.Any
	Bool       = zap.Bool
	Int        = zap.Int
	Int64      = zap.Int64
	Uint64     = zap.Uint64
	String     = zap.String
	Stringer   = zap.Stringer
	Time       = zap.Time
	Error      = zap.Error
	NamedError = zap.NamedError
)
