package service

import "sync"

// taskLocks hands out one mutex per task ID so that turn submissions for a
// given task are fully serialized while unrelated tasks proceed
// concurrently. Entries are reference-counted and removed once the last
// holder releases, keeping the map bounded by in-flight submissions.
type taskLocks struct {
	mu      sync.Mutex
	entries map[string]*taskLockEntry
}

type taskLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newTaskLocks() *taskLocks {
	return &taskLocks{entries: make(map[string]*taskLockEntry)}
}

// Acquire blocks until the task's lock is held and returns the release func.
func (l *taskLocks) Acquire(taskID string) func() {
	l.mu.Lock()
	entry, ok := l.entries[taskID]
	if !ok {
		entry = &taskLockEntry{}
		l.entries[taskID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, taskID)
		}
		l.mu.Unlock()
	}
}
