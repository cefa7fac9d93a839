// Package runner orchestrates one mksls invocation: scan for spec
// files, parse them, resolve conflicts and execute, strictly in order.
package runner

import (
	"mksls/pkg/executor"
	"mksls/pkg/logging"
	"mksls/pkg/parser"
	"mksls/pkg/resolver"
	"mksls/pkg/scanner"
	"mksls/pkg/types"
)

// Reporter receives the per-spec result records and the non-fatal
// problems encountered along the way, in processing order.
type Reporter interface {
	// Result is called once per processed spec.
	Result(res types.Result)

	// ParseIssue is called once per malformed spec file line.
	ParseIssue(issue parser.Issue)

	// FileError is called when a spec file cannot be read at all.
	FileError(path string, err error)
}

// Runner wires the pipeline together. Processing is fully sequential:
// one spec is resolved and executed before the next is considered, so
// a sticky choice made on an early conflict governs all later ones.
type Runner struct {
	scanner  *scanner.Scanner
	resolver *resolver.Resolver
	executor *executor.Executor
	reporter Reporter
}

// New creates a Runner.
func New(sc *scanner.Scanner, rs *resolver.Resolver, ex *executor.Executor, rep Reporter) *Runner {
	return &Runner{scanner: sc, resolver: rs, executor: ex, reporter: rep}
}

// Run processes every spec under the scan root and returns all result
// records. Only two things abort the run: a failed scan (nothing to
// process) and a broken decision provider (no way to resolve further
// conflicts). Everything else degrades to a per-item outcome.
func (r *Runner) Run() ([]types.Result, error) {
	logger := logging.GetLogger("runner")

	files, err := r.scanner.Scan()
	if err != nil {
		return nil, err
	}

	var results []types.Result
	for _, file := range files {
		logger.Info().Str("file", file).Msg("processing spec file")

		specs, issues, err := parser.ParseFile(file)
		if err != nil {
			logger.Error().Err(err).Str("file", file).Msg("spec file unreadable, skipping")
			r.reporter.FileError(file, err)
			continue
		}
		for _, issue := range issues {
			logger.Warn().Err(issue.Err).Str("file", issue.File).Int("line", issue.Line).Msg("malformed spec line")
			r.reporter.ParseIssue(issue)
		}

		for _, spec := range specs {
			res, err := r.process(spec)
			if err != nil {
				return results, err
			}
			results = append(results, res)
			r.reporter.Result(res)
		}
	}

	logger.Info().Int("specs", len(results)).Msg("run complete")
	return results, nil
}

// process handles a single spec end to end.
func (r *Runner) process(spec types.SymlinkSpec) (types.Result, error) {
	insp, err := r.executor.Inspect(spec)
	if err != nil {
		return types.Result{Spec: spec, Outcome: types.OutcomeFailed, Err: err}, nil
	}

	switch insp {
	case executor.InspectionMissing:
		return r.executor.Create(spec), nil
	case executor.InspectionAlreadyLinked:
		return types.Result{Spec: spec, Outcome: types.OutcomeAlreadyLinked}, nil
	}

	decision, err := r.resolver.Resolve(spec)
	if err != nil {
		// A dead decision provider means no further conflict can be
		// resolved; stop rather than guess
		return types.Result{}, err
	}
	return r.executor.Apply(spec, decision), nil
}
