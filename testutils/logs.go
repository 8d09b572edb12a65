package testutils

import (
	"log"
	"strings"
	"sync"
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

// Logs collects the output of a *log.Logger. It's safe for concurrent use.
type Logs struct {
	builder strings.Builder
	lock    sync.Mutex
}

func NewLogs() (*Logs, *log.Logger) {
	logs := &Logs{}
	return logs, logs.NewLogger()
}

func (tl *Logs) NewLogger() *log.Logger {
	return log.New(tl, "test logger: ", 0)
}

func (tl *Logs) Write(p []byte) (int, error) {
	tl.lock.Lock()
	defer tl.lock.Unlock()
	return tl.builder.Write(p)
}

func (tl *Logs) Logs() string {
	tl.lock.Lock()
	defer tl.lock.Unlock()
	return tl.builder.String()
}

func (tl *Logs) AssertContains(t *testing.T, message string) {
	t.Helper()
	assert.Assert(t, is.Contains(tl.Logs(), message))
}

func (tl *Logs) AssertDoesNotContain(t *testing.T, message string) {
	t.Helper()
	logs := tl.Logs()
	assert.Assert(t, !strings.Contains(logs, message), "logs:\n%s", logs)
}

func (tl *Logs) Reset() {
	tl.lock.Lock()
	defer tl.lock.Unlock()
	tl.builder.Reset()
}
