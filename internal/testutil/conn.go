package testutil

import (
	"context"

	"github.com/leapstack-labs/pgmodel/pkg/core"
)

// Call records one statement executed against a FakeConn.
type Call struct {
	SQL  string
	Args []any
}

// FakeConn is a scripted core.Conn for builder and orchestrator tests.
// Queued results are consumed in order; when the script runs dry, Query
// returns no rows and Exec returns zero. Every call is recorded.
type FakeConn struct {
	Calls []Call

	QueryResults [][]core.Row
	ExecResults  []int64
	Err          error
}

var _ core.Conn = (*FakeConn)(nil)

// Query records the call and pops the next scripted result set.
func (f *FakeConn) Query(_ context.Context, sql string, args ...any) ([]core.Row, error) {
	f.Calls = append(f.Calls, Call{SQL: sql, Args: args})
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.QueryResults) == 0 {
		return nil, nil
	}
	rows := f.QueryResults[0]
	f.QueryResults = f.QueryResults[1:]
	return rows, nil
}

// Exec records the call and pops the next scripted affected count.
func (f *FakeConn) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	f.Calls = append(f.Calls, Call{SQL: sql, Args: args})
	if f.Err != nil {
		return 0, f.Err
	}
	if len(f.ExecResults) == 0 {
		return 0, nil
	}
	n := f.ExecResults[0]
	f.ExecResults = f.ExecResults[1:]
	return n, nil
}

// LastCall returns the most recent recorded call.
func (f *FakeConn) LastCall() Call {
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}
