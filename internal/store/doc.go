// Package store persists finished schedules in SQLite. Only final results
// are recorded: the run summary, every workflow's span and every task's
// placement. Nothing about the scheduler's intermediate state is stored.
package store
