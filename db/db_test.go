//go:build small_tests || medium_tests || contract_tests || all_tests

package db

import (
	"github.com/mbland/addrcheck/testdata"
)

const testAddress = testdata.TestInvalidAddress
const testTimeStr = testdata.TestTimeStr

var testUid = testdata.TestUid
var testTimestamp = testdata.TestTimestamp

func newTestResult(address string, valid bool, reason string) *Result {
	return &Result{
		Id:        testUid,
		Address:   address,
		Valid:     valid,
		Reason:    reason,
		Timestamp: testTimestamp,
	}
}
