// Package store defines the persistence interfaces and sentinel errors for
// mastery records. Implementations live under internal/platform; callers
// depend only on the interfaces here.
package store
