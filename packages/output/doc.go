// Package output formats call results, bench reports, and history listings
// for the terminal.
package output
