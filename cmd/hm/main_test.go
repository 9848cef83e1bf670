//go:build unit

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipList(t *testing.T) {
	t.Setenv("HM_SKIP", "fmt, lint ,")

	skip := skipList([]string{"vet"})
	assert.Equal(t, []string{"vet", "fmt", "lint"}, skip)
}

func TestSkipList_EmptyEnvironment(t *testing.T) {
	t.Setenv("HM_SKIP", "")

	assert.Equal(t, []string{"vet"}, skipList([]string{"vet"}))
	assert.Empty(t, skipList(nil))
}

func TestDots(t *testing.T) {
	assert.Len(t, "short"+dots("short"), 60)
	assert.Empty(t, dots(string(make([]byte, 70))))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Passed", title("passed"))
	assert.Equal(t, "", title(""))
}
