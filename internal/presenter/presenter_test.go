package presenter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*Presenter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWithOptions(&out, &errOut, ColorNever), &out, &errOut
}

func TestPresenterOutput(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Success("installed tools")
	p.Warning("skipped linter")
	p.Info("plain")
	p.Detail("formatter")
	p.Section("Plugins")
	p.Error(errors.New("boom"))

	assert.Equal(t, "✓ installed tools\n⚠ skipped linter\nplain\n  - formatter\nPlugins\n-------\n", out.String())
	assert.Equal(t, "✗ boom\n", errOut.String())
}

func TestPresenterQuiet(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Success("hidden")
	p.Info("hidden")
	p.Error(errors.New("still shown"))
	p.Error(nil)

	assert.Empty(t, out.String())
	assert.Equal(t, "✗ still shown\n", errOut.String())
}
