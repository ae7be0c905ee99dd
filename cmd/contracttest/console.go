package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

type ConsoleTestLogger struct {
	Verbose bool
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	if c.Verbose {
		fmt.Printf("[%s]\n", id)
	}
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool) {
	if failed {
		failColor.Printf("FAIL")
		fmt.Printf(" %s\n", id)
		return
	}
	passColor.Printf("PASS")
	fmt.Printf(" %s\n", id)
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if !c.Verbose {
		return
	}
	skipColor.Printf("SKIP")
	if reason == "" {
		fmt.Printf(" %s\n", id)
	} else {
		fmt.Printf(" %s (%s)\n", id, reason)
	}
}

func PrintResults(results Results) {
	passed := len(results.Tests) - len(results.Failures)
	if results.OK() {
		passColor.Printf("All %d tests passed", passed)
	} else {
		failColor.Printf("%d of %d tests failed", len(results.Failures), len(results.Tests))
	}
	if len(results.Skipped) > 0 {
		fmt.Printf(" (%d skipped)", len(results.Skipped))
	}
	fmt.Println()

	for _, f := range results.Failures {
		failColor.Printf("  %s\n", f.TestID)
		for _, err := range f.Errors {
			fmt.Printf("    %s\n", strings.ReplaceAll(err.Error(), "\n", "\n    "))
		}
	}
}
