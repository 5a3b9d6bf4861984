package sim

import "errors"

// ErrInvalidConfig marks configuration validation failures. Every validation
// error wraps this sentinel with the offending field and value, so callers
// can classify with errors.Is while the message stays specific.
var ErrInvalidConfig = errors.New("invalid system configuration")

// ErrNumericalInstability marks a stationary solve that produced a
// non-finite or negative probability, or a vanishing normalization sum.
var ErrNumericalInstability = errors.New("numerical instability in stationary solve")
