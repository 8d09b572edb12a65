package agent

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mbland/addrcheck/db"
	"github.com/mbland/addrcheck/email"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency bounds the goroutines ValidateAll uses when
// ProdAgent.MaxConcurrency isn't positive.
const DefaultMaxConcurrency = 8

type ValidationAgent interface {
	Validate(ctx context.Context, address string) (*db.Result, error)
	ValidateAll(ctx context.Context, addresses []string) ([]*db.Result, error)
}

// ProdAgent validates addresses and, if Db isn't nil, records each Result.
//
// An invalid address produces a Result with Valid set to false, not an error.
// Only failures to generate an Id or store a Result produce errors.
type ProdAgent struct {
	Validator      email.AddressValidator
	Db             db.Database
	NewUid         func() (uuid.UUID, error)
	CurrentTime    func() time.Time
	MaxConcurrency int
	Log            *log.Logger
}

func (a *ProdAgent) Validate(
	ctx context.Context, address string,
) (result *db.Result, err error) {
	r := &db.Result{Address: address, Valid: true}

	if r.Id, err = a.NewUid(); err != nil {
		return
	}
	r.Timestamp = a.CurrentTime()

	var addrErr *email.InvalidAddressError
	if err = a.Validator.ValidateAddress(address); errors.As(err, &addrErr) {
		r.Valid = false
		r.Reason = addrErr.Reason.String()
		a.Log.Printf("%s failed validation: %s", address, r.Reason)
	} else if err != nil {
		return
	}

	if a.Db == nil {
		return r, nil
	} else if err = a.Db.Put(ctx, r); err != nil {
		return
	}
	return r, nil
}

// ValidateAll validates addresses concurrently, returning results in the same
// order. It returns the first error encountered, if any, along with whatever
// results were completed.
func (a *ProdAgent) ValidateAll(
	ctx context.Context, addresses []string,
) ([]*db.Result, error) {
	results := make([]*db.Result, len(addresses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency())

	for i, address := range addresses {
		g.Go(func() (err error) {
			results[i], err = a.Validate(gctx, address)
			return
		})
	}
	return results, g.Wait()
}

func (a *ProdAgent) maxConcurrency() int {
	if a.MaxConcurrency <= 0 {
		return DefaultMaxConcurrency
	}
	return a.MaxConcurrency
}
