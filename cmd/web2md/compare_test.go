package main_test

import (
	"testing"

	"github.com/fwojciec/web2md"
	main "github.com/fwojciec/web2md/cmd/web2md"
	"github.com/fwojciec/web2md/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticConverter(markdown string, err error) *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(p *web2md.Page, _ web2md.Options) (*web2md.Document, error) {
			if err != nil {
				return nil, err
			}
			return &web2md.Document{URL: p.URL, Markdown: markdown}, nil
		},
	}
}

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stats and both outputs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("<p>x</p>")
		deps.Converter = staticConverter("# T\n\n[a](https://a) ![i](https://i.png)", nil)
		deps.Reference = staticConverter("# T\n\nplain", nil)

		cmd := &main.CompareCmd{Source: "-"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "rules")
		assert.Contains(t, out, "html-to-markdown")
		assert.Contains(t, out, "=== rules ===\n# T\n\n[a](https://a) ![i](https://i.png)")
		assert.Contains(t, out, "=== html-to-markdown ===\n# T\n\nplain")
	})

	t.Run("returns engine errors after printing", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("<p>x</p>")
		deps.Converter = staticConverter("ok", nil)
		deps.Reference = staticConverter("", web2md.Errorf(web2md.ECONVERSION, "parse failed"))

		cmd := &main.CompareCmd{Source: "-"}
		err := cmd.Run(deps)

		assert.Equal(t, web2md.ECONVERSION, web2md.ErrorCode(err))
		assert.Contains(t, stdout.String(), "error: parse failed")
		assert.Contains(t, stdout.String(), "=== rules ===\nok")
	})
}
