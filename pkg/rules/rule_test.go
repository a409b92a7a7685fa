package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	req := require.New(t)
	infos := All()
	req.NotEmpty(infos)

	info, ok := Lookup("usingorder")
	req.True(ok, "lookup ignores case")
	req.Equal(Info{
		Name:           "UsingOrder",
		Description:    "Sort usings alphabetically, System usings first, newline between distinct root namespaces",
		Order:          UsingOrderFormattingRule,
		DefaultEnabled: false,
	}, info.Info)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]bool
		wantRules []string
		wantErr   string
	}{
		{"defaults", nil, nil, ""},
		{"enable", map[string]bool{"UsingOrder": true}, []string{"UsingOrder"}, ""},
		{"enable ignoring case", map[string]bool{"usingORDER": true}, []string{"UsingOrder"}, ""},
		{"explicitly disabled", map[string]bool{"UsingOrder": false}, nil, ""},
		{"unknown rule", map[string]bool{"Missing": true}, nil, `unknown rule "Missing"`},
		{"same rule spelled twice", map[string]bool{"UsingOrder": false, "usingorder": true}, nil, `rule UsingOrder is configured twice, as "UsingOrder" and "usingorder"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			selected, err := Select(tt.overrides, Settings{})
			if tt.wantErr != "" {
				req.EqualError(err, tt.wantErr)
				return
			}
			req.NoError(err)
			var names []string
			for _, r := range selected {
				names = append(names, r.Info().Name)
			}
			req.Equal(tt.wantRules, names)
		})
	}
}

func TestNormalize(t *testing.T) {
	req := require.New(t)

	normalized, err := Normalize(map[string]bool{"usingORDER": true})
	req.NoError(err)
	req.Equal(map[string]bool{UsingOrderName: true}, normalized)

	normalized, err = Normalize(nil)
	req.NoError(err)
	req.Empty(normalized)
	req.NotNil(normalized)

	// the outcome must not depend on map iteration order
	for i := 0; i < 50; i++ {
		_, err := Normalize(map[string]bool{"UsingOrder": false, "usingorder": true})
		req.EqualError(err, `rule UsingOrder is configured twice, as "UsingOrder" and "usingorder"`)
	}
}

func TestSelect_settings(t *testing.T) {
	req := require.New(t)
	selected, err := Select(map[string]bool{UsingOrderName: true}, Settings{StandardPrefix: "Contoso"})
	req.NoError(err)
	req.Len(selected, 1)

	rule, ok := selected[0].(*UsingOrder)
	req.True(ok)
	req.Equal(-1, rule.Compare("Contoso.Core", "Alpha"))
}

func TestRegister_duplicate(t *testing.T) {
	req := require.New(t)
	req.Panics(func() {
		Register(Registration{Info: Info{Name: "usingorder"}})
	})
}
