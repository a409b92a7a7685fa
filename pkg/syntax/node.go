package syntax

import "strings"

// LanguageCSharp is the language identifier passed to rules for C# sources
const LanguageCSharp = "C#"

// Kind identifies the shape of a syntax node
type Kind int

const (
	CompilationUnitKind Kind = iota
	ExternAliasDirectiveKind
	UsingDirectiveKind
	MembersKind
)

func (k Kind) String() string {
	switch k {
	case CompilationUnitKind:
		return "CompilationUnit"
	case ExternAliasDirectiveKind:
		return "ExternAliasDirective"
	case UsingDirectiveKind:
		return "UsingDirective"
	case MembersKind:
		return "Members"
	default:
		return "Unknown"
	}
}

// Node is any element of a parsed source file. Nodes are immutable; the
// With* methods return modified copies that share unchanged parts.
type Node interface {
	Kind() Kind
	// FullString renders the node including all of its trivia
	FullString() string
}

// directive holds the pieces shared by extern alias and using directives
type directive struct {
	leading  TriviaList
	text     string // keyword through the terminating semicolon
	trailing TriviaList
}

func (d directive) fullString() string {
	return d.leading.String() + d.text + d.trailing.String()
}

// ExternAliasDirective is an `extern alias X;` line. It is carried through
// rewrites untouched.
type ExternAliasDirective struct {
	directive
}

// NewExternAliasDirective creates an extern alias directive node
func NewExternAliasDirective(leading TriviaList, text string, trailing TriviaList) *ExternAliasDirective {
	return &ExternAliasDirective{
		directive: directive{leading: leading.clone(), text: text, trailing: trailing.clone()},
	}
}

func (e *ExternAliasDirective) Kind() Kind         { return ExternAliasDirectiveKind }
func (e *ExternAliasDirective) FullString() string { return e.fullString() }

// UsingDirective is a single using statement outside any namespace block
type UsingDirective struct {
	directive
	name string
}

// NewUsingDirective creates a using directive node. name is the dotted
// namespace (or alias target) with whitespace removed.
func NewUsingDirective(leading TriviaList, text, name string, trailing TriviaList) *UsingDirective {
	return &UsingDirective{
		directive: directive{leading: leading.clone(), text: text, trailing: trailing.clone()},
		name:      name,
	}
}

func (u *UsingDirective) Kind() Kind         { return UsingDirectiveKind }
func (u *UsingDirective) FullString() string { return u.fullString() }

// Name returns the dotted namespace the directive refers to
func (u *UsingDirective) Name() string { return u.name }

func (u *UsingDirective) LeadingTrivia() TriviaList  { return u.leading.clone() }
func (u *UsingDirective) TrailingTrivia() TriviaList { return u.trailing.clone() }

// WithLeadingTrivia returns a copy of the directive whose leading trivia is
// replaced by the given list
func (u *UsingDirective) WithLeadingTrivia(trivia ...Trivia) *UsingDirective {
	c := *u
	c.leading = TriviaList(trivia).clone()
	return &c
}

// WithoutLeadingTrivia returns a copy of the directive with no leading trivia
func (u *UsingDirective) WithoutLeadingTrivia() *UsingDirective {
	return u.WithLeadingTrivia()
}

// WithTrailingTrivia returns a copy of the directive whose trailing trivia is
// replaced by the given list
func (u *UsingDirective) WithTrailingTrivia(trivia ...Trivia) *UsingDirective {
	c := *u
	c.trailing = TriviaList(trivia).clone()
	return &c
}

// Members is the remainder of a compilation unit after its header
// directives: namespaces, attributes, types and top-level statements. It is
// kept verbatim.
type Members struct {
	text string
}

// NewMembers wraps the verbatim member region of a file
func NewMembers(text string) *Members {
	return &Members{text: text}
}

func (m *Members) Kind() Kind         { return MembersKind }
func (m *Members) FullString() string { return m.text }

// CompilationUnit is the root node of one source file
type CompilationUnit struct {
	externs []*ExternAliasDirective
	usings  []*UsingDirective
	members *Members
}

// NewCompilationUnit assembles a root node. A nil members region is treated
// as empty.
func NewCompilationUnit(externs []*ExternAliasDirective, usings []*UsingDirective, members *Members) *CompilationUnit {
	if members == nil {
		members = NewMembers("")
	}
	return &CompilationUnit{
		externs: externs,
		usings:  usings,
		members: members,
	}
}

func (c *CompilationUnit) Kind() Kind { return CompilationUnitKind }

// Externs returns the extern alias directives in source order
func (c *CompilationUnit) Externs() []*ExternAliasDirective {
	return append([]*ExternAliasDirective(nil), c.externs...)
}

// Usings returns the top-level using directives in source order
func (c *CompilationUnit) Usings() []*UsingDirective {
	return append([]*UsingDirective(nil), c.usings...)
}

func (c *CompilationUnit) Members() *Members { return c.members }

// WithUsings returns a new compilation unit with the using list replaced.
// Extern aliases and members are shared with the receiver.
func (c *CompilationUnit) WithUsings(usings []*UsingDirective) *CompilationUnit {
	return &CompilationUnit{
		externs: c.externs,
		usings:  append([]*UsingDirective(nil), usings...),
		members: c.members,
	}
}

// LineBreak returns the line ending used by the file: the first end-of-line
// trivia found in the header, else the first line break in the members,
// else "\n".
func (c *CompilationUnit) LineBreak() string {
	for _, e := range c.externs {
		if lb, ok := e.leading.lineBreak(); ok {
			return lb
		}
		if lb, ok := e.trailing.lineBreak(); ok {
			return lb
		}
	}
	for _, u := range c.usings {
		if lb, ok := u.leading.lineBreak(); ok {
			return lb
		}
		if lb, ok := u.trailing.lineBreak(); ok {
			return lb
		}
	}
	if i := strings.IndexByte(c.members.text, '\n'); i > 0 && c.members.text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// FullString renders the whole file
func (c *CompilationUnit) FullString() string {
	var b strings.Builder
	for _, e := range c.externs {
		b.WriteString(e.FullString())
	}
	for _, u := range c.usings {
		b.WriteString(u.FullString())
	}
	b.WriteString(c.members.text)
	return b.String()
}
