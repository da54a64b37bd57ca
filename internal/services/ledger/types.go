package ledger

// Code is a business outcome of a ledger operation. Rejections like
// insufficient funds are codes, not errors: state is unchanged and the
// caller gets a normal response.
type Code string

const (
	CodeOK                          Code = "OK"
	CodeInsufficientFunds           Code = "InsufficientFunds"
	CodeInvalid                     Code = "Invalid"
	CodeInsufficientFundsToRollback Code = "InsufficientFundsToRollback"
)

type BetResult struct {
	Code          Code
	PlayerID      string
	BalanceMinor  int64 // cents
	TransactionID string
}

type RollbackResult struct {
	Code         Code
	BalanceMinor int64 // cents
}
