package mapping

// Mapper overlays a partial update payload onto an aggregate.
type Mapper[D any, A any] interface {
	// Merge applies the known fields of dto onto aggregate. Fields absent from
	// dto are left unchanged. The returned aggregate is the one to persist; it
	// may or may not be the same instance that was passed in.
	Merge(dto D, aggregate A) (A, error)
}

// MapperFunc adapts a function to Mapper.
type MapperFunc[D any, A any] func(dto D, aggregate A) (A, error)

func (f MapperFunc[D, A]) Merge(dto D, aggregate A) (A, error) {
	return f(dto, aggregate)
}
