package board

import "fmt"

// ParseError reports FEN text that does not decode to a well-formed record.
// It is surfaced to the caller and never retried.
type ParseError struct {
	Field string // which FEN field was malformed
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid FEN %s: %s", e.Field, e.Msg)
}

// StructuralError reports a move whose start square is empty. This is a
// caller bug: a move must always come from LegalMoves of the same position.
type StructuralError struct {
	Start Square
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("no piece on start square %s", e.Start)
}
