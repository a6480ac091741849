package chunk

import "github.com/arloliu/numcodec/latent"

// PerLatentVar holds one value of type T per latent variable a mode might
// populate. Delta is a pointer because it's reserved for the unimplemented
// Lookback delta encoding; Secondary is a pointer because Classic mode
// never populates it. Primary is always present.
type PerLatentVar[T any] struct {
	Delta     *T
	Primary   T
	Secondary *T
}

// Enumerated returns (key, value) pairs for every populated field, in
// canonical wire order (delta, primary, secondary).
func (p PerLatentVar[T]) Enumerated() []struct {
	Key   latent.VarKey
	Value T
} {
	out := make([]struct {
		Key   latent.VarKey
		Value T
	}, 0, 3)

	if p.Delta != nil {
		out = append(out, struct {
			Key   latent.VarKey
			Value T
		}{latent.VarKeyDelta, *p.Delta})
	}
	out = append(out, struct {
		Key   latent.VarKey
		Value T
	}{latent.VarKeyPrimary, p.Primary})
	if p.Secondary != nil {
		out = append(out, struct {
			Key   latent.VarKey
			Value T
		}{latent.VarKeySecondary, *p.Secondary})
	}

	return out
}

// HasSecondary reports whether p carries a secondary latent variable.
func (p PerLatentVar[T]) HasSecondary() bool {
	return p.Secondary != nil
}
