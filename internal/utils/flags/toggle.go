package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeNameConstant        = "toggle"
	toggleTrueCanonicalValueConstant  = "yes"
	toggleFalseCanonicalValueConstant = "no"
	toggleParseErrorTemplateConstant  = "invalid toggle value %q"
	toggleUnknownFlagTemplateConstant = "unknown toggle flag %q"
	toggleWrongKindTemplateConstant   = "flag %q is not a toggle"
)

var (
	trueLiteralSet = map[string]struct{}{
		"true": {}, "yes": {}, "on": {}, "1": {}, "t": {}, "y": {},
	}
	falseLiteralSet = map[string]struct{}{
		"false": {}, "no": {}, "off": {}, "0": {}, "f": {}, "n": {},
	}
)

type toggleFlagValue struct {
	enabled bool
}

// String renders the canonical yes/no form.
func (toggle *toggleFlagValue) String() string {
	if toggle.enabled {
		return toggleTrueCanonicalValueConstant
	}
	return toggleFalseCanonicalValueConstant
}

// Set parses yes/no style literals case-insensitively.
func (toggle *toggleFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if _, isTrue := trueLiteralSet[normalizedValue]; isTrue {
		toggle.enabled = true
		return nil
	}
	if _, isFalse := falseLiteralSet[normalizedValue]; isFalse {
		toggle.enabled = false
		return nil
	}
	return fmt.Errorf(toggleParseErrorTemplateConstant, rawValue)
}

// Type reports the flag value type shown in usage text.
func (toggle *toggleFlagValue) Type() string {
	return toggleFlagTypeNameConstant
}

// AddToggleFlag registers a boolean flag accepting yes/no style values; passing
// the bare flag enables it.
func AddToggleFlag(flagSet *pflag.FlagSet, name string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	flagSet.Var(&toggleFlagValue{enabled: defaultValue}, name, usage)
	if registeredFlag := flagSet.Lookup(name); registeredFlag != nil {
		registeredFlag.NoOptDefVal = toggleTrueCanonicalValueConstant
	}
}

// ToggleValue reads the current value of a toggle flag registered via AddToggleFlag.
func ToggleValue(flagSet *pflag.FlagSet, name string) (bool, error) {
	if flagSet == nil {
		return false, fmt.Errorf(toggleUnknownFlagTemplateConstant, name)
	}

	registeredFlag := flagSet.Lookup(name)
	if registeredFlag == nil {
		return false, fmt.Errorf(toggleUnknownFlagTemplateConstant, name)
	}

	toggle, isToggle := registeredFlag.Value.(*toggleFlagValue)
	if !isToggle {
		return false, fmt.Errorf(toggleWrongKindTemplateConstant, name)
	}

	return toggle.enabled, nil
}
