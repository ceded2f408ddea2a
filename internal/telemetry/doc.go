// Package telemetry records learner response events and ships them to an
// external collector in batches. Delivery is best-effort and at-least-once:
// a batch that fails to send stays pending for the next flush, and no
// telemetry failure ever surfaces to the learner-facing path.
package telemetry
