//go:build unit

package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitNullTerminated(t *testing.T) {
	assert.Equal(t,
		[]string{"a.py", "dir/b.md", "name with spaces.txt"},
		splitNullTerminated([]byte("a.py\x00dir/b.md\x00name with spaces.txt\x00")),
	)
	assert.Empty(t, splitNullTerminated([]byte("")))
	assert.Empty(t, splitNullTerminated([]byte("\x00")))
}
