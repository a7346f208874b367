package validation

// Validator checks an aggregate's invariants.
type Validator[A any] interface {
	// EnsureValid returns nil when the aggregate satisfies every rule, or a
	// *domainerror.ValidationError listing the broken ones.
	EnsureValid(aggregate A) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[A any] func(aggregate A) error

func (f ValidatorFunc[A]) EnsureValid(aggregate A) error {
	return f(aggregate)
}
