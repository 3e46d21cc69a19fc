package consts

const (
	RuneFwdSlash    = '/'
	RuneColon       = ':'
	RuneAsterisk    = '*'
	RuneQuestion    = '?'
	RuneNewLine     = '\n'
	RuneSingleSpace = ' '
)

// Wildcard is the pattern segment that applies to a whole subtree.
const Wildcard = "*"
