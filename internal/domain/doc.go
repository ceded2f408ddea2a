// Package domain contains the core business entities, value objects, and
// domain logic of the application: vocabulary items, per-learner mastery
// records, and the quality signal that drives scheduling. It is independent
// of any specific infrastructure or delivery mechanism.
package domain
