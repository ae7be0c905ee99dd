package main

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestResult struct {
	TestID TestID
	Errors []error
}

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestID
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool)
	TestSkipped(id TestID, reason string)
}

type environment struct {
	results    Results
	testLogger TestLogger
	filter     func(TestID) bool
}

// Context plays the role of *testing.T for the suite. It satisfies
// require.TestingT, so testify assertions can be used directly.
type Context struct {
	env      *environment
	id       TestID
	failed   bool
	errors   []error
	cleanups []func()
}

func Run(filter func(TestID) bool, testLogger TestLogger, action func(*Context)) Results {
	env := &environment{filter: filter, testLogger: testLogger}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		for i := len(c.cleanups) - 1; i >= 0; i-- {
			c.cleanups[i]()
		}
		if len(c.id.Path) == 0 {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	if c.env.filter != nil && !c.env.filter(id) {
		c.env.results.Skipped = append(c.env.results.Skipped, id)
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}

	c.env.testLogger.TestStarted(id)
	child := &Context{id: id, env: c.env}
	child.run(action)
	c.env.testLogger.TestFinished(id, child.failed)
}

// Cleanup registers f to run when the test finishes, newest first.
func (c *Context) Cleanup(f func()) {
	c.cleanups = append(c.cleanups, f)
}

func (c *Context) Errorf(format string, args ...any) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) FailNow() {
	panic(c)
}
