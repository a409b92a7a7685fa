package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siyuan-infoblox/using-order/pkg/errors"
	"github.com/siyuan-infoblox/using-order/pkg/syntax"
)

// Relative rule priorities, lower values run first
const (
	UsingOrderFormattingRule = 10
)

// Info is the registration metadata of a rule
type Info struct {
	Name           string
	Description    string
	Order          int
	DefaultEnabled bool
}

// Rule rewrites a syntax node. Rules must return the input unchanged for
// nodes or languages they do not handle.
type Rule interface {
	Info() Info
	Process(node syntax.Node, language string) syntax.Node
}

// Settings carries user configuration that rule constructors may consume
type Settings struct {
	StandardPrefix string // namespace prefix sorted first by UsingOrder
}

// Registration binds rule metadata to a constructor
type Registration struct {
	Info Info
	New  func(Settings) Rule
}

var registry []Registration

// Register adds a rule to the registry. It panics on duplicate names.
func Register(r Registration) {
	if _, ok := Lookup(r.Info.Name); ok {
		panic(fmt.Sprintf("rules: duplicate rule %q", r.Info.Name))
	}
	registry = append(registry, r)
}

// Lookup finds a registered rule by name, ignoring case
func Lookup(name string) (Registration, bool) {
	for _, r := range registry {
		if strings.EqualFold(r.Info.Name, name) {
			return r, true
		}
	}
	return Registration{}, false
}

// All returns the metadata of every registered rule in execution order
func All() []Info {
	infos := make([]Info, 0, len(registry))
	for _, r := range registry {
		infos = append(infos, r.Info)
	}
	sortInfos(infos)
	return infos
}

// CanonicalName returns the registered spelling of a rule name
func CanonicalName(name string) (string, error) {
	r, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf(errors.ErrMsgUnknownRule, name)
	}
	return r.Info.Name, nil
}

// Normalize rekeys overrides by registered rule name. Unknown names are an
// error, and so is one rule spelled two ways, since map order would decide
// which setting wins.
func Normalize(overrides map[string]bool) (map[string]bool, error) {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	normalized := make(map[string]bool, len(overrides))
	spelling := make(map[string]string, len(overrides))
	for _, name := range names {
		canonical, err := CanonicalName(name)
		if err != nil {
			return nil, err
		}
		if prev, ok := spelling[canonical]; ok {
			return nil, fmt.Errorf(errors.ErrMsgDuplicateRule, canonical, prev, name)
		}
		spelling[canonical] = name
		normalized[canonical] = overrides[name]
	}
	return normalized, nil
}

// Select builds the rules to run. A rule runs when overrides enables it, or
// when it is enabled by default and overrides does not disable it.
func Select(overrides map[string]bool, settings Settings) ([]Rule, error) {
	normalized, err := Normalize(overrides)
	if err != nil {
		return nil, err
	}
	enabled := make(map[string]bool, len(registry))
	for _, r := range registry {
		enabled[r.Info.Name] = r.Info.DefaultEnabled
	}
	for name, on := range normalized {
		enabled[name] = on
	}

	var selected []Rule
	for _, info := range All() {
		if !enabled[info.Name] {
			continue
		}
		r, _ := Lookup(info.Name)
		selected = append(selected, r.New(settings))
	}
	return selected, nil
}

func sortInfos(infos []Info) {
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Order != infos[j].Order {
			return infos[i].Order < infos[j].Order
		}
		return infos[i].Name < infos[j].Name
	})
}

func init() {
	Register(Registration{
		Info: usingOrderInfo,
		New: func(s Settings) Rule {
			return NewUsingOrder(s.StandardPrefix)
		},
	})
}
