package limits

import (
	"errors"
	"fmt"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
)

var (
	// ErrLimitReached is the sentinel all quota denials match.
	ErrLimitReached = errors.New("resource limit reached")

	// ErrNoCounterRegistered is returned when a resource has no counter.
	ErrNoCounterRegistered = errors.New("no counter registered for resource")
)

// LimitError is a quota denial carrying the reading that caused it.
type LimitError struct {
	Resource billing.Resource
	Current  int64
	Limit    int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("limit reached for %s: %d of %d used", e.Resource, e.Current, e.Limit)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitReached
}
