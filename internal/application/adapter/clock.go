package adapter

import "time"

// Clock is the time source used wherever "today" matters.
type Clock interface {
	Now() time.Time
}
