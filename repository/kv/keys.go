// Package kv implements the repositories over the flat key-value store.
// Records are UTF-8 JSON under namespaced keys; the layout matches what
// earlier releases of the client wrote, including the unscoped legacy keys
// that are migrated on first access.
package kv

import "fmt"

// DefaultPrefix namespaces every key written by current releases.
const DefaultPrefix = "ff."

// Legacy unscoped keys, read once and removed after migration.
const (
	legacyTasksKey = "focusflow_tasks"
	legacyStatsKey = "focusflow_stats"
)

type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return keys{prefix: prefix}
}

func (k keys) users() string {
	return k.prefix + "users"
}

func (k keys) currentUser() string {
	return k.prefix + "currentUser"
}

func (k keys) tasks(userID string) string {
	return fmt.Sprintf("%sdata.%s.tasks", k.prefix, userID)
}

func (k keys) stats(userID string) string {
	return fmt.Sprintf("%sdata.%s.stats", k.prefix, userID)
}
