package accessor

// Layer is a transformation inner accessor -> outer accessor. A Layer must:
//
//   - preserve operational semantics for every operation it does not
//     intentionally modify, by delegating to inner;
//   - never alter the path or op-args payload without a documented reason;
//   - never swallow an error it does not explicitly handle;
//   - preserve inner's capability bitset unless it strictly removes bits.
type Layer interface {
	Apply(inner Accessor) Accessor
}

// Compose applies layers to inner in order, so the last layer listed ends
// up outermost — the first one a caller's call reaches. This mirrors
// middleware-chain composition: Compose(inner, A, B, C) produces
// C(B(A(inner))).
func Compose(inner Accessor, layers ...Layer) Accessor {
	acc := inner
	for _, l := range layers {
		acc = l.Apply(acc)
	}
	return acc
}
