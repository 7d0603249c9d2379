package ledger

import "context"

// FailOnRequest aborts transfers that ask for a simulated failure.
func FailOnRequest(_ context.Context, req TransferRequest) error {
	if req.SimulateFailure {
		return ErrSimulatedFailure
	}
	return nil
}

// ChainHooks runs hooks in order and stops at the first error.
func ChainHooks(hooks ...PreCommitHook) PreCommitHook {
	return func(ctx context.Context, req TransferRequest) error {
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if err := h(ctx, req); err != nil {
				return err
			}
		}
		return nil
	}
}
