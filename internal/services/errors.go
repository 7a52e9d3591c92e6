package services

import "errors"

var (
	// ErrEmptyCandidateSet indicates no catalog place matched the request filters.
	ErrEmptyCandidateSet = errors.New("no candidate places match the request")

	// ErrStopNotFound indicates the requested day or stop order is not in the course.
	ErrStopNotFound = errors.New("stop not found in course")

	// ErrNoReplacement indicates every fallback tier came back empty.
	ErrNoReplacement = errors.New("no replacement found")
)
