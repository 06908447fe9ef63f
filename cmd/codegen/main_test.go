package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/autotrack/cmd/codegen/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	src, err := render(templates.Store{
		Package: "things",
		Type:    "Thing",
		Fields: []templates.Field{
			{Name: "name", Type: "string"},
			{Name: "tags", Type: "[]string"},
		},
	})
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "package things")
	assert.Contains(t, out, "\tname  *reactive.ObservableValue[string]\n")
	assert.Contains(t, out, "func (x *Thing) SetTags(v []string) {")
	assert.Contains(t, out, `reactive.WithName("Thing.tags")`)

	_, err = render(templates.Store{Package: "things", Type: "Thing"})
	assert.ErrorIs(t, err, templates.ErrNoFields)

	// a field named after a generated method would not compile
	_, err = render(templates.Store{
		Package: "things",
		Type:    "Thing",
		Fields:  []templates.Field{{Name: "snapshot", Type: "int"}},
	})
	assert.ErrorIs(t, err, templates.ErrReserved)
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store_gen.go")

	written, err := writeIfChanged(path, []byte("package a\n"))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = writeIfChanged(path, []byte("package a\n"))
	require.NoError(t, err)
	assert.False(t, written)

	written, err = writeIfChanged(path, []byte("package b\n"))
	require.NoError(t, err)
	assert.True(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package b\n", string(got))
}
