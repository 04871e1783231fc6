package web2md_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/web2md"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := web2md.Errorf(web2md.ENOTFOUND, "document %q not found", "abc")

	assert.Equal(t, web2md.ENOTFOUND, web2md.ErrorCode(err))
	assert.Equal(t, "document \"abc\" not found", web2md.ErrorMessage(err))
	assert.Contains(t, err.Error(), "code=not_found")
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, web2md.ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("saving: %w", web2md.Errorf(web2md.EDOWNLOAD, "disk full"))

		assert.Equal(t, web2md.EDOWNLOAD, web2md.ErrorCode(err))
		assert.Equal(t, "disk full", web2md.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()

		err := errors.New("boom")

		assert.Equal(t, web2md.EINTERNAL, web2md.ErrorCode(err))
		assert.Equal(t, "Internal error.", web2md.ErrorMessage(err))
	})
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, web2md.ErrorMessage(nil))
}
