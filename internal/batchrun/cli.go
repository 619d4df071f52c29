package batchrun

import "io"

// ShowHelp prints usage information for the batch tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Arena Batch Tool
================

Plays many games with the same cast and reports aggregate outcomes.

Usage:
  arena-batch [options]

Options:
  -games int
        Number of games to play (default 100)
  -seed int
        Base seed; game i uses seed+i (default: random per game)
  -workers int
        Number of in-process workers (default CPU cores * 2)
  -max-ticks int
        Tick limit per game, 0 for none (default 1000)
  -catalog string
        Template catalog file (default: embedded catalog)
  -url string
        Run on an arena server instead of in-process
  -timeout duration
        HTTP request timeout for -url (default 5m)
  -format string
        Report format, text or json (default "text")
  -output string
        Also write the report to this file
  -help
        Show this help message

Examples:
  arena-batch -games 1000 -seed 42
  arena-batch -games 500 -format json -output report.json
  arena-batch -url http://localhost:9080 -games 200
`)
}
