package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mbland/addrcheck/ops"
)

type Database interface {
	Get(ctx context.Context, address string) (*Result, error)
	Put(ctx context.Context, result *Result) error
	Delete(ctx context.Context, address string) error
}

const ErrResultNotFound = ops.SentinelError("validation result not found")

// ResultTtl is how long a stored Result lives before the DynamoDB Time To
// Live feature removes it.
const ResultTtl = 30 * 24 * time.Hour

// TimestampFormat is the layout of Result.String() timestamps.
const TimestampFormat = time.RFC1123Z

// Result records the outcome of validating a single address.
//
// Reason is empty when Valid is true.
type Result struct {
	Id        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	Valid     bool      `json:"valid"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"Id: %s, Address: %s, Valid: %t, Reason: %s, Timestamp: %s",
		r.Id,
		r.Address,
		r.Valid,
		r.Reason,
		r.Timestamp.Format(TimestampFormat),
	)
}

// Expires returns the time after which the stored Result becomes eligible
// for removal.
func (r *Result) Expires() time.Time {
	return r.Timestamp.Add(ResultTtl)
}
