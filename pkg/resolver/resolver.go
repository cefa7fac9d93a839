// Package resolver decides what to do with specs whose link path
// already exists.
package resolver

import (
	"mksls/pkg/logging"
	"mksls/pkg/types"
)

// Resolver is the per-run conflict state machine. It consults the
// sticky policy first; only while the policy is PolicyNone does it
// fall through to the decision provider. An "apply to all" choice
// flips the policy, so the provider is never consulted again for the
// rest of the run.
type Resolver struct {
	policy   types.StickyPolicy
	provider types.DecisionProvider
}

// New creates a resolver seeded with a run-level policy. Pass
// types.PolicyNone for interactive runs.
func New(policy types.StickyPolicy, provider types.DecisionProvider) *Resolver {
	return &Resolver{policy: policy, provider: provider}
}

// Policy returns the current sticky policy.
func (r *Resolver) Policy() types.StickyPolicy {
	return r.policy
}

// Resolve returns the decision for a conflicting spec. It must only be
// called for actual conflicts; whether the link path exists (and
// whether it is already the right symlink) is the executor's business.
func (r *Resolver) Resolve(spec types.SymlinkSpec) (types.Decision, error) {
	logger := logging.GetLogger("resolver")

	if decision, ok := r.policy.Decision(); ok {
		logger.Debug().
			Str("link", spec.Link).
			Stringer("policy", r.policy).
			Msg("conflict resolved by sticky policy")
		return decision, nil
	}

	choice, err := r.provider.ResolveConflict(spec)
	if err != nil {
		return types.DecisionSkip, err
	}

	if choice.All {
		r.policy = stickyFor(choice.Decision)
		logger.Info().
			Stringer("policy", r.policy).
			Msg("sticky policy set for the rest of the run")
	}

	return choice.Decision, nil
}

func stickyFor(d types.Decision) types.StickyPolicy {
	switch d {
	case types.DecisionBackup:
		return types.PolicyAlwaysBackup
	case types.DecisionOverwrite:
		return types.PolicyAlwaysOverwrite
	default:
		return types.PolicyAlwaysSkip
	}
}
