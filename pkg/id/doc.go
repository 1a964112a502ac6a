// Package id generates process-unique identifiers for naming queues.
//
// Queue names are the only coordination point between processes sharing a
// backend, so transient queues (worker scratch queues, test fixtures) need
// names that cannot collide across processes. A Generator carries an 8-byte
// random tag chosen at construction and appends a per-generator sequence
// number, so ids from different processes differ in the tag and ids within
// a process differ in the sequence.
//
// Usage
//
//	g := id.NewGenerator()
//	name := "scratch-" + g.Next().String()
package id
