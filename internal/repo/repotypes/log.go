package repotypes

import (
	"time"
)

// LogFilter selects the records of one service with From <= timestamp <= To.
// A zero From or To means the bound is missing, so 0001-01-01T00:00:00Z
// cannot be used as an explicit bound.
type LogFilter struct {
	Service string
	From    time.Time
	To      time.Time
}
