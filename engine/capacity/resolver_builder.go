package capacity

type ResolverBuilderOption func(*resolverImpl)

// WithReservedSamplers holds back sampler slots for bindings outside the resource blocks
// (shadow maps, environment maps and the like).
//
// Parameters:
//   - n: the number of per-stage sampled image slots to reserve
//
// Returns:
//   - ResolverBuilderOption: a function that sets the reservation
func WithReservedSamplers(n uint32) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.reservedSamplers = n
	}
}
