package analyzer

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is matched when a percentage is requested over zero records.
var ErrDivisionByZero = errors.New("division by zero")

// UndefinedRateError reports a percentage statistic that cannot be computed
// because no record was processed.
type UndefinedRateError struct {
	Statistic Statistic
}

func (e *UndefinedRateError) Error() string {
	return fmt.Sprintf("statistic %s: percentage of zero requests: %v", e.Statistic, ErrDivisionByZero)
}

// Is makes errors.Is(err, ErrDivisionByZero) hold.
func (e *UndefinedRateError) Is(target error) bool {
	return target == ErrDivisionByZero
}
