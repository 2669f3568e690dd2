//go:build !debug

package pseudo

// debugAssertions enables catalog round-trip checks in Catalog.Unchecked.
const debugAssertions = false
