package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Other is any token that does not take part in member-access structure.
	Other Kind = iota
	// Identifier is a name token: a property after a dot or a plain identifier.
	Identifier
	// Dot is the '.' of a member access.
	Dot
	// OpenBracket is the '[' of a computed member access.
	OpenBracket
	// CloseBracket is the ']' matching an OpenBracket.
	CloseBracket
	// CallOpenParen is the '(' opening a call argument list.
	CallOpenParen
	// CallCloseParen is the ')' closing a call argument list.
	CallCloseParen
	// Comment is a line or block comment.
	Comment
)

var kindNames = [...]string{
	Other:          "Other",
	Identifier:     "Identifier",
	Dot:            "Dot",
	OpenBracket:    "OpenBracket",
	CloseBracket:   "CloseBracket",
	CallOpenParen:  "CallOpenParen",
	CallCloseParen: "CallCloseParen",
	Comment:        "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsConnector reports whether the kind introduces or closes a join.
func (k Kind) IsConnector() bool {
	switch k {
	case Dot, OpenBracket, CloseBracket:
		return true
	default:
		return false
	}
}
