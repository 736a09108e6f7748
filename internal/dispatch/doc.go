// Package dispatch runs batches through a fixed pool of workers.
//
// Each batch is processed start to finish by exactly one worker and always
// produces exactly one outcome; a failing batch never cancels, delays or
// alters any other. At most Workers batches are in flight at any instant.
// Outcomes arrive in completion order, not submission order.
//
// Every worker folds its outcomes into a private slurp.RunResult; the
// per-worker tallies are merged once all workers have exited, so counting
// needs no locks.
package dispatch
