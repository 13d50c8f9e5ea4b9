package jibriqueue

import "errors"

var (
	// ErrNoStore is returned by New when no store is supplied.
	ErrNoStore = errors.New("jibriqueue: no store configured")

	// ErrEmptyWorkerID is returned by Publish when the worker id is empty.
	ErrEmptyWorkerID = errors.New("jibriqueue: empty worker id")

	// ErrNoWorkerAvailable is returned by ClaimNext when its context is
	// cancelled before any worker could be claimed.
	ErrNoWorkerAvailable = errors.New("jibriqueue: no worker available")

	// ErrAlreadyStarted is returned by Start when the watch relay is
	// already running.
	ErrAlreadyStarted = errors.New("jibriqueue: tracker already started")
)
