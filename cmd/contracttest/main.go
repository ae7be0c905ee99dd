package main

import (
	"fmt"
	"os"
	"time"
)

const requestTimeout = 10 * time.Second

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	client := NewBlogClient(params.serviceURL, requestTimeout)

	fmt.Printf("Running blog post contract tests against %s\n\n", params.serviceURL)

	logger := &ConsoleTestLogger{Verbose: params.verbose}
	results := Run(params.filters.Match, logger, func(c *Context) {
		RunSuite(c, client)
	})

	fmt.Println()
	PrintResults(results)
	if !results.OK() {
		os.Exit(1)
	}
}
