// Package domain defines the core persistence models for the application.
// This file provides generation and validation of registration identifiers,
// the tokens used for local deduplication of submissions.
package domain

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// regIDPattern matches a well-formed registration identifier:
// "ECO-" + base36 millisecond timestamp + "-" + base36 random suffix,
// all upper case.
var regIDPattern = regexp.MustCompile(`^ECO-[0-9A-Z]+-[0-9A-Z]+$`)

// NewRegistrationID returns a fresh registration identifier of the form
// ECO-<base36 timestamp>-<base36 random>, upper-cased. The timestamp part
// encodes the current Unix time in milliseconds; the random part is five
// base36 characters. Once attached to a registration the ID is immutable.
func NewRegistrationID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	r := strconv.FormatInt(rand.Int63n(36*36*36*36*36), 36)
	for len(r) < 5 {
		r = "0" + r
	}
	return strings.ToUpper("ECO-" + ts + "-" + r)
}

// ValidRegistrationID reports whether id matches the canonical token shape.
func ValidRegistrationID(id string) bool {
	return regIDPattern.MatchString(id)
}
