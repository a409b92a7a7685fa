package rules

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/using-order/pkg/csharp"
	"github.com/siyuan-infoblox/using-order/pkg/syntax"
)

func verify(t *testing.T, source, expected string) {
	t.Helper()
	req := require.New(t)
	unit, err := csharp.Parse(source)
	req.NoError(err)

	rule := NewUsingOrder("")
	result := rule.Process(unit, syntax.LanguageCSharp)
	req.Equal(expected, result.FullString())

	again := rule.Process(result, syntax.LanguageCSharp)
	req.Equal(expected, again.FullString(), "rule must be idempotent")
}

func directives(names ...string) []*syntax.UsingDirective {
	usings := make([]*syntax.UsingDirective, 0, len(names))
	for _, name := range names {
		usings = append(usings, syntax.NewUsingDirective(nil, "using "+name+";", name, syntax.TriviaList{syntax.EndOfLine("\n")}))
	}
	return usings
}

func namesOf(usings []*syntax.UsingDirective) []string {
	names := make([]string, 0, len(usings))
	for _, u := range usings {
		names = append(names, u.Name())
	}
	return names
}

func TestUsingOrder_Basic(t *testing.T) {
	source := `
using NS2;
using System.IO;
using NS2.Text;
using System;

namespace NS1
{
    class C1 { }
}`

	expected := `using System;
using System.IO;

using NS2;
using NS2.Text;

namespace NS1
{
    class C1 { }
}`
	verify(t, source, expected)
}

func TestUsingOrder_InsideNamespaceUnaffected(t *testing.T) {
	source := `
namespace NS2
{
    using NS4;
    using NS3;
    class C1 { }
}`
	verify(t, source, source)
}

func TestUsingOrder_SimpleMoveWithComment(t *testing.T) {
	source := `
// test
using NS1.Internal;
using NS1;

namespace NS2
{

    class C1 { }
}`

	// the comment above NS1.Internal is dropped when it moves
	expected := `using NS1;
using NS1.Internal;

namespace NS2
{

    class C1 { }
}`
	verify(t, source, expected)
}

func TestUsingOrder_KeepsLineEndings(t *testing.T) {
	source := "using Xunit;\r\nusing System;\r\n\r\nclass C { }\r\n"
	expected := "using System;\r\n\r\nusing Xunit;\r\n\r\nclass C { }\r\n"
	verify(t, source, expected)
}

func TestUsingOrder_UnterminatedLines(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "no final newline, last directive moves up",
			source:   "using Xunit;\nusing System;",
			expected: "using System;\n\nusing Xunit;\n",
		},
		{
			name:     "no final newline, already sorted",
			source:   "using System;\nusing Xunit;",
			expected: "using System;\n\nusing Xunit;",
		},
		{
			name:     "directives sharing a line",
			source:   "using System.IO; using System;\nclass C { }\n",
			expected: "using System;\nusing System.IO;\nclass C { }\n",
		},
		{
			name:     "trailing comment without newline",
			source:   "using Xunit;\nusing System; // core",
			expected: "using System; // core\n\nusing Xunit;\n",
		},
		{
			name:     "crlf file",
			source:   "using Xunit;\r\nusing System;",
			expected: "using System;\r\n\r\nusing Xunit;\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verify(t, tt.source, tt.expected)
		})
	}
}

func TestUsingOrder_ExternAliasAndStatic(t *testing.T) {
	source := "extern alias Lib;\nusing static System.Math;\nusing Json = Newtonsoft.Json;\nusing System;\n"
	expected := "extern alias Lib;\nusing System;\nusing static System.Math;\n\nusing Json = Newtonsoft.Json;\n"
	verify(t, source, expected)
}

func TestUsingOrder_PassThrough(t *testing.T) {
	req := require.New(t)
	rule := NewUsingOrder("")
	unit, err := csharp.Parse("using NS2;\nusing System;\n")
	req.NoError(err)

	t.Run("other language", func(t *testing.T) {
		req.Same(unit, rule.Process(unit, "Visual Basic"))
	})

	t.Run("not a compilation unit", func(t *testing.T) {
		members := syntax.NewMembers("class C { }")
		req.Same(members, rule.Process(members, syntax.LanguageCSharp))
		using := unit.Usings()[0]
		req.Same(using, rule.Process(using, syntax.LanguageCSharp))
	})

	t.Run("no usings", func(t *testing.T) {
		empty, err := csharp.Parse("namespace N { }\n")
		req.NoError(err)
		req.Same(empty, rule.Process(empty, syntax.LanguageCSharp))
	})

	t.Run("input is not modified", func(t *testing.T) {
		before := unit.FullString()
		result := rule.Process(unit, syntax.LanguageCSharp)
		req.NotSame(unit, result)
		req.Equal(before, unit.FullString())
	})
}

func TestUsingOrder_Compare(t *testing.T) {
	rule := NewUsingOrder("")
	tests := []struct {
		a, b string
		want int
	}{
		{"System", "System.IO", -1},
		{"System.IO", "NS2", -1},
		{"System", "Aaa", -1},
		{"NS2", "NS2.Text", -1},
		{"Microsoft.CSharp", "Xunit", -1},
		{"xunit", "Xunit", 1},
		{"System.IO", "System.IO", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.want, rule.Compare(tt.a, tt.b))
			req.Equal(-tt.want, rule.Compare(tt.b, tt.a))
		})
	}
}

func TestUsingOrder_Order(t *testing.T) {
	req := require.New(t)
	rule := NewUsingOrder("")

	t.Run("scenario order", func(t *testing.T) {
		input := directives("NS2", "System.IO", "NS2.Text", "System")
		sorted := rule.Order(input)
		req.Equal([]string{"System", "System.IO", "NS2", "NS2.Text"}, namesOf(sorted))
		req.Equal([]string{"NS2", "System.IO", "NS2.Text", "System"}, namesOf(input), "input must not be reordered")
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		input := directives("B", "A", "A")
		first, second := input[1], input[2]
		sorted := rule.Order(input)
		req.Same(first, sorted[0])
		req.Same(second, sorted[1])
	})

	t.Run("custom standard prefix", func(t *testing.T) {
		contoso := NewUsingOrder("Contoso")
		sorted := contoso.Order(directives("System", "Contoso.Core", "Contoso"))
		req.Equal([]string{"Contoso", "Contoso.Core", "System"}, namesOf(sorted))
	})
}

func TestRegroup(t *testing.T) {
	req := require.New(t)
	comment := syntax.Trivia{Kind: syntax.SingleLineCommentTrivia, Text: "// note"}
	input := []*syntax.UsingDirective{
		syntax.NewUsingDirective(syntax.TriviaList{syntax.EndOfLine("\n")}, "using System;", "System", nil),
		syntax.NewUsingDirective(syntax.TriviaList{comment, syntax.EndOfLine("\n")}, "using System.IO;", "System.IO", nil),
		syntax.NewUsingDirective(syntax.TriviaList{comment, syntax.EndOfLine("\n")}, "using NS2;", "NS2", nil),
		syntax.NewUsingDirective(nil, "using NS2.Text;", "NS2.Text", nil),
	}

	out := Regroup(input, "\r\n")

	req.Len(out, 4)
	req.Empty(out[0].LeadingTrivia(), "first directive never gets a blank line")
	req.Empty(out[1].LeadingTrivia(), "same group is packed and loses its comment")
	req.Equal(syntax.TriviaList{syntax.EndOfLine("\r\n")}, out[2].LeadingTrivia())
	req.Empty(out[3].LeadingTrivia())
	req.Equal("// note\n", input[1].LeadingTrivia().String(), "input must not be modified")
}

func TestTopLevelSegment(t *testing.T) {
	req := require.New(t)
	req.Equal("System", TopLevelSegment("System"))
	req.Equal("System", TopLevelSegment("System.Collections.Generic"))
	req.Equal("NS2", TopLevelSegment("NS2.Text"))
	req.Equal("global::System", TopLevelSegment("global::System.IO"))
}

// TestUsingOrder_Properties checks the ordering and grouping invariants on
// shuffled inputs.
func TestUsingOrder_Properties(t *testing.T) {
	pool := []string{
		"System", "System.IO", "System.Linq", "System.Collections.Generic",
		"NS1", "NS1.Internal", "NS2", "NS2.Text",
		"Microsoft.CodeAnalysis", "Microsoft.CodeAnalysis.CSharp", "Xunit", "Aardvark",
	}
	rule := NewUsingOrder("")
	rng := rand.New(rand.NewSource(42))

	for iteration := 0; iteration < 50; iteration++ {
		names := append([]string(nil), pool[:1+rng.Intn(len(pool))]...)
		rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

		var b strings.Builder
		for _, n := range names {
			b.WriteString("\n// about " + n + "\nusing " + n + ";\n")
		}
		b.WriteString("\nclass C { }\n")

		unit, err := csharp.Parse(b.String())
		require.NoError(t, err)
		result := rule.Process(unit, syntax.LanguageCSharp).(*syntax.CompilationUnit)
		usings := result.Usings()
		got := namesOf(usings)

		seenOther := false
		for _, n := range got {
			isStd := strings.HasPrefix(n, "System")
			require.False(t, isStd && seenOther, "System usings first: %v", got)
			seenOther = seenOther || !isStd
		}

		require.True(t, sort.SliceIsSorted(got, func(i, j int) bool {
			return rule.Compare(got[i], got[j]) < 0
		}), "sorted: %v", got)

		for i, u := range usings {
			leading := u.LeadingTrivia()
			if i == 0 || TopLevelSegment(got[i]) == TopLevelSegment(got[i-1]) {
				require.Empty(t, leading, "no leading trivia at %d in %v", i, got)
				continue
			}
			require.Equal(t, syntax.TriviaList{syntax.EndOfLine("\n")}, leading, "single line break at %d in %v", i, got)
		}

		again := rule.Process(result, syntax.LanguageCSharp)
		require.Equal(t, result.FullString(), again.FullString())
	}
}
