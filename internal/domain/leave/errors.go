package leave

import "errors"

var (
	ErrLedgerNotFound      = errors.New("leave ledger not found")
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrInvalidDateRange    = errors.New("from date is after to date")
	ErrBalanceExhausted    = errors.New("leave balance exhausted for the requested type")
	ErrCasualMonthlyCap    = errors.New("casual leave monthly cap reached")
	ErrOverlappingRequest  = errors.New("an existing leave request covers this range")
	ErrAlreadyProcessed    = errors.New("leave request already processed")
	ErrAlreadyRejected     = errors.New("leave request already rejected")
	ErrNotRequestOwner     = errors.New("only the requesting employee may delete this request")
	ErrDeleteNonPending    = errors.New("only pending leave requests can be deleted")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)
