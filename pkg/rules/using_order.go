package rules

import (
	"slices"
	"strings"

	"github.com/siyuan-infoblox/using-order/pkg/std"
	"github.com/siyuan-infoblox/using-order/pkg/syntax"
)

const (
	UsingOrderName        = "UsingOrder"
	UsingOrderDescription = "Sort usings alphabetically, System usings first, newline between distinct root namespaces"
)

var usingOrderInfo = Info{
	Name:           UsingOrderName,
	Description:    UsingOrderDescription,
	Order:          UsingOrderFormattingRule,
	DefaultEnabled: false,
}

// UsingOrder sorts the using directives of a compilation unit with the
// standard namespace first and separates root namespaces with a blank line.
// Directives inside namespace blocks are not touched.
//
// Leading trivia of every top-level using is replaced, so comments placed
// directly above a using directive are dropped. This includes a file header
// comment when the file starts with a using.
type UsingOrder struct {
	standardPrefix string
}

// NewUsingOrder creates the rule. An empty prefix selects std.DefaultPrefix.
func NewUsingOrder(standardPrefix string) *UsingOrder {
	if standardPrefix == "" {
		standardPrefix = std.DefaultPrefix
	}
	return &UsingOrder{standardPrefix: standardPrefix}
}

func (r *UsingOrder) Info() Info { return usingOrderInfo }

// Process rewrites a C# compilation unit; any other node is returned as is
func (r *UsingOrder) Process(node syntax.Node, language string) syntax.Node {
	if language != syntax.LanguageCSharp {
		return node
	}
	root, ok := node.(*syntax.CompilationUnit)
	if !ok || root == nil {
		return node
	}

	usings := root.Usings()
	if len(usings) == 0 {
		return node
	}
	lineBreak := root.LineBreak()
	ordered := terminateLines(r.Order(usings), usings[len(usings)-1], lineBreak)
	return root.WithUsings(Regroup(ordered, lineBreak))
}

// terminateLines ends directives with a line break, except last when it is
// still the final directive. A directive that shared its line with the next
// one, or ended a file without a final newline, would otherwise run into
// whatever follows it after sorting.
func terminateLines(usings []*syntax.UsingDirective, last *syntax.UsingDirective, lineBreak string) []*syntax.UsingDirective {
	for i, u := range usings {
		trailing := u.TrailingTrivia()
		if trailing.EndsLine() || (i == len(usings)-1 && u == last) {
			continue
		}
		for len(trailing) > 0 && trailing[len(trailing)-1].Kind == syntax.WhitespaceTrivia {
			trailing = trailing[:len(trailing)-1]
		}
		usings[i] = u.WithTrailingTrivia(append(trailing, syntax.EndOfLine(lineBreak))...)
	}
	return usings
}
