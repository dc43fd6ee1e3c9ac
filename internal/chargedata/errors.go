package chargedata

import (
	"errors"
	"fmt"

	"github.com/gyeh/chargecompare/internal/db"
)

// OpError wraps a failure with the operation and procedure it happened in.
// It only travels as far as the Store's log record; callers see ok=false.
type OpError struct {
	Op        string
	Procedure string
	Err       error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Op, e.Procedure, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// MissingResultSet reports whether err is a protocol violation (a result set
// the procedure should have opened was absent) rather than a database fault.
func MissingResultSet(err error) bool {
	return errors.Is(err, db.ErrNoResultSet)
}
