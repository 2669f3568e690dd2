package pseudo

// Classify returns the cascade timing of a pseudo-element.
//
// ::before and ::after are eager regardless of the internal flag and are
// checked first. Internal anonymous boxes are precomputed from user agent
// rules, everything else is resolved lazily.
func Classify(pe Element) CascadeType {
	if pe.IsBeforeOrAfter() {
		return CascadeTypeEager
	}
	if pe.internal {
		return CascadeTypePrecomputed
	}
	return CascadeTypeLazy
}
