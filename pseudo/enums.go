package pseudo

//go:generate go tool go-enum --marshal -f $GOFILE

// Cascade timing of a pseudo-element.
// ENUM(eager, precomputed, lazy)
type CascadeType int
