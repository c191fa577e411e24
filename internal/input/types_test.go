package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionNamespace(t *testing.T) {
	assert.Equal(t, "inflection", NewAction("inflection.pluralize", SourceCLI).Namespace())
	assert.Equal(t, "quit", NewAction("quit", SourceCLI).Namespace())
	assert.Equal(t, "", NewAction("", SourceCLI).Namespace())
}

func TestActionWithArg(t *testing.T) {
	a := NewAction("inflection.pluralize", SourcePlugin)
	b := a.WithArg("dryRun", true).WithArg("note", "x")

	assert.Nil(t, a.Args.Extra, "original action is not modified")
	assert.True(t, b.Args.GetBool("dryRun"))
	v, ok := b.Args.Get("note")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.False(t, b.Args.GetBool("note"))
	assert.False(t, b.Args.GetBool("missing"))
}

func TestActionSourceString(t *testing.T) {
	assert.Equal(t, "plugin", SourcePlugin.String())
	assert.Equal(t, "cli", SourceCLI.String())
	assert.Equal(t, "unknown", ActionSource(99).String())
}
