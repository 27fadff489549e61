package execution

// Policy hands an Executor to an algorithm together with the guarantees the
// caller is willing to relax.
type Policy struct {
	executor *Executor
	relaxed  bool
}

// NewPolicy wraps ex. relaxed allows block results to be combined in any
// association.
func NewPolicy(ex *Executor, relaxed bool) Policy {
	return Policy{executor: ex, relaxed: relaxed}
}

// MakeParallelPolicy wraps ex with relaxed ordering.
func MakeParallelPolicy(ex *Executor) Policy {
	return NewPolicy(ex, true)
}

// Executor returns the wrapped executor.
func (p Policy) Executor() *Executor {
	return p.executor
}

// RelaxedOrdering reports whether block order is insignificant.
func (p Policy) RelaxedOrdering() bool {
	return p.relaxed
}

// RunOptions returns the per-run options the policy implies.
func (p Policy) RunOptions() []RunOption {
	return []RunOption{WithRelaxedOrdering(p.relaxed)}
}
