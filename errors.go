package finance

import "errors"

// Error kinds surfaced by the core. The boundary layer matches them with
// errors.Is to choose a response; the core always wraps them with context.
var (
	// Validation errors: the caller's input is wrong, retrying is pointless.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrInvalidKind   = errors.New("kind must be credit or debit")
	ErrInvalidNAV    = errors.New("nav must be a positive number")
	ErrMissingField  = errors.New("missing required field")

	// Not-found errors: the caller referenced something unknown.
	ErrFundNotFound = errors.New("fund not found")

	// Conflict errors: the caller must change its request.
	ErrDuplicateFund         = errors.New("fund already exists")
	ErrNoScheduledAmount     = errors.New("no contribution amount scheduled for the current year")
	ErrSameMonthContribution = errors.New("contribution already applied for this month")
	ErrDuplicateRecord       = errors.New("transaction id already recorded")

	// Storage errors: I/O failed, the operation may be retried.
	// A failed commit never leaves a partially applied transaction visible;
	// retrying with the same logical intent is safe because record ids are
	// deterministic and the store refuses duplicates.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCommitFailed     = errors.New("commit failed")
)
