package harness

import "github.com/ajxudir/loxtest/pkg/catalog"

// CaseSource provides the cases of a run.
//
// Standard implementation: *catalog.Catalog
type CaseSource interface {
	// All returns the Normal and ExpectError cases in execution order.
	All() ([]catalog.TestCase, []catalog.TestCase, error)
}

// CaseExecutor runs and judges one case.
//
// Standard implementation: *Executor
type CaseExecutor interface {
	// Execute runs tc, judges it and performs the diagnostic re-run when
	// the verdict fails. Only a launch failure is returned as an error.
	Execute(tc catalog.TestCase) (Verdict, error)
}

// Verify that Catalog implements the CaseSource interface.
var _ CaseSource = (*catalog.Catalog)(nil)
