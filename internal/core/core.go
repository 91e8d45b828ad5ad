// Package core implements the sequence classifier, its configuration, and
// the run-history store backing the seqmark CLI.
package core

import "errors"

// ErrInvalidArgument marks validation failures on caller-supplied input,
// such as a non-positive bound or a malformed rule.
var ErrInvalidArgument = errors.New("invalid argument")
