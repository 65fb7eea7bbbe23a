package rules

import _ "embed"

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns the embedded default ruleset. It panics on a broken
// embed, which only a bad build can produce.
func Defaults() *Ruleset {
	rs, err := Parse(defaultsYAML)
	if err != nil {
		panic("rules: embedded defaults are invalid: " + err.Error())
	}
	return rs
}
