package sharing

//go:generate go tool go-enum --marshal -f $GOFILE

// How an attribute affects style.
// ENUM(present, equals)
type Mode int
