package syntax

import "strings"

// TriviaKind classifies non-semantic source content attached to a node
type TriviaKind int

const (
	WhitespaceTrivia TriviaKind = iota
	EndOfLineTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia
	DirectiveTrivia // preprocessor line such as #region or #if
)

func (k TriviaKind) String() string {
	switch k {
	case WhitespaceTrivia:
		return "whitespace"
	case EndOfLineTrivia:
		return "end-of-line"
	case SingleLineCommentTrivia:
		return "single-line-comment"
	case MultiLineCommentTrivia:
		return "multi-line-comment"
	case DirectiveTrivia:
		return "directive"
	default:
		return "unknown"
	}
}

// Trivia is one piece of whitespace, line break, comment or directive text
type Trivia struct {
	Kind TriviaKind
	Text string
}

// EndOfLine returns a line break trivia with the given text ("\n" or "\r\n")
func EndOfLine(text string) Trivia {
	return Trivia{Kind: EndOfLineTrivia, Text: text}
}

// TriviaList is an ordered run of trivia
type TriviaList []Trivia

// String concatenates the text of every trivia in the list
func (l TriviaList) String() string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Text)
	}
	return b.String()
}

// lineBreak returns the text of the first end-of-line trivia in the list
func (l TriviaList) lineBreak() (string, bool) {
	for _, t := range l {
		if t.Kind == EndOfLineTrivia {
			return t.Text, true
		}
	}
	return "", false
}

// EndsLine reports whether the list contains a line break
func (l TriviaList) EndsLine() bool {
	_, ok := l.lineBreak()
	return ok
}

func (l TriviaList) clone() TriviaList {
	if len(l) == 0 {
		return nil
	}
	out := make(TriviaList, len(l))
	copy(out, l)
	return out
}
