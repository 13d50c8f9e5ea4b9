package redis

import "strings"

// Redis key naming conventions for tracker data.
// All keys are prefixed with "jibri:" to avoid collisions.

const keyPrefix = "jibri:"

// idleKey returns the idle presence record key: jibri:idle:{workerID}
func idleKey(workerID string) string { return keyPrefix + "idle:" + workerID }

// idleScanPattern matches all idle presence record keys.
const idleScanPattern = keyPrefix + "idle:*"

// idleKeyWorkerID recovers the worker id from an idle presence key.
func idleKeyWorkerID(key string) string {
	return strings.TrimPrefix(key, keyPrefix+"idle:")
}

// pendingKey returns the pending lock key: jibri:pending:{workerID}
func pendingKey(workerID string) string { return keyPrefix + "pending:" + workerID }

// idleChannel is the Pub/Sub channel announcing idle publications.
const idleChannel = keyPrefix + "events:idle"
