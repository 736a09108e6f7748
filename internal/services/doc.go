// Package services wires the loader, partitioner, dispatcher and submitter
// into a single insert run and reports its progress through a slurp.Logger.
package services
