// Package store defines interfaces for reading the task/action source
// relations and for landing synced records in the analytics database.
// These interfaces keep the resolver and sync logic independent of the
// concrete database technology behind them.
package store
