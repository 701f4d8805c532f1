package orderspec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{name: "empty file", data: "", want: []string{}},
		{name: "lf", data: "README.md\nsrc\n", want: []string{"README.md", "src"}},
		{name: "crlf", data: "README.md\r\nsrc\r\n", want: []string{"README.md", "src"}},
		{name: "blank and padded lines", data: "\n  docs  \n\n   \nLICENSE", want: []string{"docs", "LICENSE"}},
		{name: "duplicates kept", data: "a\na\n", want: []string{"a", "a"}},
		{
			name: "regex lines kept in place",
			data: "a\n(regex)*.tmp\nb\n",
			want: []string{"a", "(regex)*.tmp", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse([]byte(tt.data)).Lines)
		})
	}
}

func TestRead(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/work/.order", []byte("src\n(regex)*.log\nREADME.md\n"), 0o644))

	order, err := Read(fs, "/work")
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "(regex)*.log", "README.md"}, order.Lines)
}

func TestRead_TypedOutcomes(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/work", 0o755))

	t.Run("missing order file", func(t *testing.T) {
		_, err := Read(fs, "/work")
		assert.True(t, errors.Is(err, ErrNoOrderFile), "got %v", err)
		assert.False(t, errors.Is(err, ErrNoRoot))
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := Read(fs, "/elsewhere")
		assert.True(t, errors.Is(err, ErrNoRoot), "got %v", err)
	})

	t.Run("empty root path", func(t *testing.T) {
		_, err := Read(fs, "")
		assert.True(t, errors.Is(err, ErrNoRoot), "got %v", err)
	})
}

func TestExtractRegexEntries(t *testing.T) {
	lines := []string{"a", "(regex)*.tmp", "b", "(regex)build*", "x(regex)"}

	assert.Equal(t, []string{"(regex)*.tmp", "(regex)build*"}, ExtractRegexEntries(lines))
	assert.Equal(t, []string{"a", "b", "x(regex)"}, PlainEntries(lines))
	assert.Equal(t, "*.tmp", StripMarker("(regex)*.tmp"))
}

func TestResolvePlain(t *testing.T) {
	got := ResolvePlain([]string{"src", "docs/guide.md", "/abs/elsewhere"}, "/work/")

	assert.Equal(t, []string{
		filepath.Join("/work", "src"),
		filepath.Join("/work", "docs", "guide.md"),
		"/abs/elsewhere",
	}, got)
}

func TestCreate(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Create(root, []string{"b", "a"}, false))

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Equal(t, "b\na\n", string(data))

	err = Create(root, []string{"c"}, false)
	assert.True(t, errors.Is(err, ErrOrderFileExists), "got %v", err)

	require.NoError(t, Create(root, []string{"c"}, true))
	data, err = os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Equal(t, "c\n", string(data))
}

func TestPrepend(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Write(root, []string{"a", "b", "(regex)*.tmp", "c"}))

	lines, err := Prepend(root, []string{"c", "z", "c"})
	require.NoError(t, err)

	want := []string{"c", "z", "a", "b", "(regex)*.tmp"}
	assert.Equal(t, want, lines)

	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Equal(t, want, Parse(data).Lines)
}

func TestPrepend_CreatesMissingFile(t *testing.T) {
	root := t.TempDir()

	lines, err := Prepend(root, []string{"README.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, lines)

	_, err = os.Stat(filepath.Join(root, FileName))
	assert.NoError(t, err)
}
