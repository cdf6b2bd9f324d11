package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathStaysInSandbox(t *testing.T) {
	env := NewTestEnv(t)

	p := env.Path("subdir", "file.md")
	assert.Contains(t, p, env.RootDir())
}

func TestWriteAndReadFile(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("notes/film.md", "# The Matrix")
	assert.True(t, env.FileExists("notes/film.md"))
	assert.Equal(t, "# The Matrix", env.ReadFileString("notes/film.md"))
	env.AssertFileContains("notes/film.md", "Matrix")
}

func TestListFiles(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("out/a.md", "a")
	env.WriteFileString("out/b.md", "b")

	files := env.ListFiles("out")
	assert.ElementsMatch(t, []string{"a.md", "b.md"}, files)
}
