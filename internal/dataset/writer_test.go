package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	table := MustTable(
		NewColumn("id", TypeInt, Integer(1), Integer(2)),
		NewColumn("score", TypeFloat, Number(0.5), Missing()),
		NewColumn("city", TypeText, Text("São Paulo"), Text("a,b")),
	)

	tests := []struct {
		name string
		opts WriteOptions
		want string
	}{
		{
			name: "plain",
			opts: WriteOptions{},
			want: "id,score,city\n1,0.5,São Paulo\n2,,\"a,b\"\n",
		},
		{
			name: "atomic",
			opts: WriteOptions{Atomic: true},
			want: "id,score,city\n1,0.5,São Paulo\n2,,\"a,b\"\n",
		},
		{
			name: "bom",
			opts: WriteOptions{BOMPrefix: true},
			want: "\xef\xbb\xbfid,score,city\n1,0.5,São Paulo\n2,,\"a,b\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "out.csv")
			w := NewWriter(tt.opts, slog.Default())

			require.NoError(t, w.Write(context.Background(), path, table))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temporary files left behind")
		})
	}
}

func TestWriter_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new one\n"), 0644))

	table := MustTable(NewColumn("x", TypeInt, Integer(1)))
	for _, atomic := range []bool{false, true} {
		w := NewWriter(WriteOptions{Atomic: atomic}, nil)
		require.NoError(t, w.Write(context.Background(), path, table))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x\n1\n", string(got))
	}
}

func TestWriter_SingleEmptyColumnRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := MustTable(NewColumn("x", TypeFloat, Number(1), Missing()))

	require.NoError(t, NewWriter(WriteOptions{}, nil).Write(context.Background(), path, table))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n1.0\n\"\"\n", string(got))

	reloaded, _, err := newTestLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Rows())
}

func TestWriter_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	table := MustTable(NewColumn("x", TypeInt, Integer(1)))

	require.NoError(t, NewWriter(WriteOptions{Atomic: true}, nil).Write(context.Background(), path, table))
	assert.FileExists(t, path)
}
