// Package finance implements the ledger and account-state engine behind the
// personal-finance record keeper. It is designed to be local-first and
// auditable: every mutation is an append to a per-user, per-month transaction
// log, and all derived state can be rebuilt from those logs.
//
// The core functionalities include:
//   - Ledger Store: durable, append-only month logs per user, committed
//     together with a compact account snapshot (balance, savings, per-month
//     category aggregates) so reads never replay the full history.
//   - Balance/Aggregate Engine: validates incoming transactions, derives the
//     running balance from the last known one, and accumulates each amount
//     into exactly one category bucket per month.
//   - Fund Registry: the shared record of recurring-investment instruments
//     (SIPs), converting scheduled contributions into fund units at the
//     submitted NAV and mirroring each contribution into the user's ledger
//     as an ordinary expense.
//   - Identifier Generator: deterministic transaction ids derived from date,
//     category, and a per-month sequence, making same-intent retries
//     detectable.
//   - Data Persistence: human-readable JSONL logs and JSON state files,
//     written with atomic replace so readers never observe partial state.
//
// This package serves as the foundational logic for the `fms` command-line
// tool. Authentication, HTTP routing, and request parsing are boundary
// concerns and live outside this module.
package finance
