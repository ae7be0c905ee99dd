package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
)

type regexList []*regexp.Regexp

func (r *regexList) String() string {
	parts := make([]string, 0, len(*r))
	for _, re := range *r {
		parts = append(parts, re.String())
	}
	return strings.Join(parts, ",")
}

func (r *regexList) Set(value string) error {
	re, err := regexp.Compile(value)
	if err != nil {
		return err
	}
	*r = append(*r, re)
	return nil
}

type RegexFilters struct {
	MustMatch    regexList
	MustNotMatch regexList
}

// Match reports whether a test id passes both filter lists.
func (f RegexFilters) Match(id TestID) bool {
	s := id.String()
	if len(f.MustMatch) > 0 {
		matched := false
		for _, re := range f.MustMatch {
			if re.MatchString(s) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range f.MustNotMatch {
		if re.MatchString(s) {
			return false
		}
	}
	return true
}

type commandParams struct {
	serviceURL string
	filters    RegexFilters
	verbose    bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the blog post service")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.verbose, "v", false, "print passing tests too")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	c.serviceURL = strings.TrimRight(c.serviceURL, "/")
	return true
}
