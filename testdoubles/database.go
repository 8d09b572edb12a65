package testdoubles

import (
	"context"
	"fmt"
	"sync"

	"github.com/mbland/addrcheck/db"
)

type Database struct {
	SimulateGetErr func(address string) error
	SimulatePutErr func(address string) error
	SimulateDelErr func(address string) error
	Index          map[string]*db.Result
	lock           sync.Mutex
}

func NewDatabase() *Database {
	simulateNilError := func(_ string) error {
		return nil
	}
	return &Database{
		SimulateGetErr: simulateNilError,
		SimulatePutErr: simulateNilError,
		SimulateDelErr: simulateNilError,
		Index:          make(map[string]*db.Result, 10),
	}
}

func (dbase *Database) Get(
	_ context.Context, address string,
) (result *db.Result, err error) {
	dbase.lock.Lock()
	defer dbase.lock.Unlock()

	if err = dbase.SimulateGetErr(address); err != nil {
		return
	}

	var ok bool
	if result, ok = dbase.Index[address]; !ok {
		err = fmt.Errorf("%w: %s", db.ErrResultNotFound, address)
	}
	return
}

func (dbase *Database) Put(_ context.Context, result *db.Result) error {
	dbase.lock.Lock()
	defer dbase.lock.Unlock()

	if err := dbase.SimulatePutErr(result.Address); err != nil {
		return err
	}
	dbase.Index[result.Address] = result
	return nil
}

// Delete doesn't fail if address isn't present, matching DynamoDB.
func (dbase *Database) Delete(_ context.Context, address string) error {
	dbase.lock.Lock()
	defer dbase.lock.Unlock()

	if err := dbase.SimulateDelErr(address); err != nil {
		return err
	}
	delete(dbase.Index, address)
	return nil
}
