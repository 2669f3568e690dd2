package selector

//go:generate go tool go-enum --marshal --names -f $GOFILE

// Origin of the stylesheet being parsed. Only user agent sheets are trusted
// to name internal pseudo-elements.
// ENUM(author, user, user-agent)
type Origin int

// Trusted reports whether the origin may use internal vocabulary.
func (o Origin) Trusted() bool {
	return o == OriginUserAgent
}

// Attribute value case sensitivity requested by a selector.
// ENUM(default, sensitive, insensitive)
type CaseSensitivity int
