// Package ident generates the prefixed entity IDs used across the store,
// e.g. "chore-m1x9k2ab-B4K7QJ2M". The middle segment is the creation time
// in base36 so IDs stay human-sortable; the suffix comes from a NUID
// generator, which is collision-resistant for the life of the process.
package ident

import (
	"strconv"
	"time"

	"github.com/nats-io/nuid"
)

const suffixLen = 8

// New returns a fresh ID with the given entity prefix.
func New(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := nuid.Next()
	suffix = suffix[len(suffix)-suffixLen:]
	return prefix + "-" + ts + "-" + suffix
}
