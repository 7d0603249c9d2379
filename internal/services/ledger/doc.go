/*
Package ledger owns every balance mutation in the system.

The ledger exposes three operations to the web layer:

	// populate transfer choices
	accounts, err := svc.ListAccounts(ctx, conn)

	// point lookup
	account, err := svc.FindAccount(ctx, conn, id)

	// move funds atomically
	outcome := svc.Transfer(ctx, conn, ledger.TransferRequest{
	    FromID: 1,
	    ToID:   2,
	    Amount: decimal.RequireFromString("40.00"),
	})

Every call runs on a connection the caller acquired for its unit of work
(see repositories.ConnManager); the ledger never opens its own.

Transfer protocol:

A transfer validates its shape before touching storage, then inside one
transaction locks both accounts (lower id first), checks the source balance,
debits and credits through AccountRepository.ApplyDelta, journals the transfer,
runs the pre-commit hook and commits. Any failure rolls the whole transaction
back, so a transfer either fully happens or leaves no trace.

Outcomes:

Transfer never returns a raw storage error. The returned Outcome is either
committed, or aborted with one of the reasons:
- invalid-request: same account on both sides, or a non-positive amount
- account-not-found: either account is missing at transaction time
- insufficient-funds: the source balance is lower than the amount
- simulated-failure: the pre-commit hook forced a rollback
- storage-error: the database failed or the transfer timed out

Failed transfers are never retried by the ledger.

Fault injection:

The default pre-commit hook, FailOnRequest, aborts transfers whose
SimulateFailure flag is set. Tests can install other hooks with
LedgerConfig.PreCommit.
*/
package ledger
