package ecs

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and probes the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(Entity, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i, e := range sa.entities {
			if b := sb.Ptr(e); b != nil {
				fn(e, &sa.data[i], b)
			}
		}
		return
	}
	for i, e := range sb.entities {
		if a := sa.Ptr(e); a != nil {
			fn(e, a, &sb.data[i])
		}
	}
}
