// Package session implements the ephemeral working sets for practice
// sessions: the priority-ordered flashcard queue with its in-session
// requeue rule, and the drawn quiz queue with its wrong-answer repeat
// passes. Queues are built from a pool of items plus their mastery
// records, live only for one session, and are discarded whenever the
// selection policy changes. Nothing in this package is persisted.
package session
