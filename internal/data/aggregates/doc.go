// Package aggregates owns transaction boundaries for multi-row writes.
//
// Implementations compose the table-level repos from internal/data/repos and run
// every write operation inside exactly one transaction. Failures are reported as
// *apierr.Error values so callers can map them onto HTTP statuses.
package aggregates
