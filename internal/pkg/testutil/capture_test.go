package testutil

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureStdout(t *testing.T) {
	out := CaptureStdout(t, func() {
		fmt.Fprint(os.Stdout, "hello")
	})
	assert.Equal(t, "hello", out)
}

func TestRedirect(t *testing.T) {
	var w io.Writer = io.Discard

	t.Run("inner", func(t *testing.T) {
		buf := Redirect(t, &w)
		fmt.Fprint(w, "x")
		assert.Equal(t, "x", buf.String())
	})

	assert.Equal(t, io.Discard, w, "writer восстанавливается после теста")
}
