package component

// SelectRole returns the fragments with the given role in their original
// order.
func SelectRole(frags []Fragment, role string) []Fragment {
	var out []Fragment
	for _, f := range frags {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out
}

// Payloads returns the payloads of frags asserted to T. Fragments with a
// different payload type are skipped.
func Payloads[T any](frags []Fragment) []T {
	out := make([]T, 0, len(frags))
	for _, f := range frags {
		if p, ok := f.Payload.(T); ok {
			out = append(out, p)
		}
	}
	return out
}

// WithSuffix returns a copy of frags with suffix appended to every role.
func WithSuffix(frags []Fragment, suffix string) []Fragment {
	if suffix == "" {
		return frags
	}
	out := make([]Fragment, len(frags))
	for i, f := range frags {
		f.Role += suffix
		out[i] = f
	}
	return out
}
