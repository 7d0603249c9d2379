package ledger

import "time"

// Default configuration values
const (
	DefaultTimeout        = 5 * time.Second
	DefaultHistoryLimit   = 20
	MaxHistoryLimit       = 100
	tracerName            = "fundsledger/ledger"
	operationListAccounts = "list_accounts"
	operationFindAccount  = "find_account"
)
