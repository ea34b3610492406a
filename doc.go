// Package ledger is the state engine of a local-first personal-finance
// tracker: one user records income, recurring expenses, bank loans, informal
// debts, rotating-savings ("chit") funds, discretionary saving buckets, and
// date-based reminders, entirely on one device.
//
// The core pieces are:
//   - Ledger Store: the single mutable snapshot holding every financial
//     entity, mutated atomically through named operations and written
//     through to durable storage after every change.
//   - Derivation Engines: pure functions that turn raw entry and payment
//     history into point-in-time status (loan amortization timelines, chit
//     fund schedules, debt progress, reminder due classification) rather
//     than reading stored counters that could drift.
//   - Linked-Transaction Side Effects: specific mutations (an EMI marked
//     paid, a reminder paid with an amount) atomically produce a derived
//     expense record and a notification log entry, detected by diffing the
//     previous and next snapshots so unrelated edits never re-fire them.
//   - Persistence and Backup: the whole snapshot is one JSON document, the
//     same format used for export/import, so a backup is always a complete,
//     restorable copy.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package ledger
