// Package watch derives queue progress from the counters the queue layer
// maintains, without mutating anything: for each named queue it reports a
// (queued, inProgress, total) triple. The CLI progress view and the HTTP
// status server both consume these snapshots.
package watch
