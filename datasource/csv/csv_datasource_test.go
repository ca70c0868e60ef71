package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	frame "github.com/go-frame/frame"
	"github.com/go-frame/frame/engine/memory"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.Nil(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestImportWithHeader(t *testing.T) {
	eng := memory.CreateEngine(nil)
	path := writeTempFile(t, "id,name,score\n1,alice,1.5\n2,bob,2.5\n")

	f, err := Import(eng, path, &ImportOptions{Header: true})
	require.Nil(t, err)

	schema, err := f.Schema()
	require.Nil(t, err)
	expected := frame.CreateSchema([]frame.Column{
		{Name: "id", Type: &frame.Int64Type{}},
		{Name: "name", Type: &frame.StringType{}},
		{Name: "score", Type: &frame.Float64Type{}},
	})
	require.Nil(t, schema.Equals(expected))

	rows, err := f.Take(10)
	require.Nil(t, err)
	require.Equal(t, frame.Row{int64(1), "alice", 1.5}, rows[0])
	require.Equal(t, frame.Row{int64(2), "bob", 2.5}, rows[1])
}

func TestImportWithoutHeader(t *testing.T) {
	eng := memory.CreateEngine(nil)
	path := writeTempFile(t, "1,true\n2,false\n")

	f, err := Import(eng, path, nil)
	require.Nil(t, err)

	names, err := f.ColumnNames()
	require.Nil(t, err)
	require.Equal(t, []string{"C0", "C1"}, names)

	rows, err := f.Take(10)
	require.Nil(t, err)
	require.Equal(t, frame.Row{int64(1), true}, rows[0])
}

func TestImportWithDeclaredSchema(t *testing.T) {
	eng := memory.CreateEngine(nil)
	path := writeTempFile(t, "1,abc\nnope,def\n")

	f, err := Import(eng, path, &ImportOptions{
		Schema: frame.CreateSchema([]frame.Column{
			{Name: "n", Type: &frame.Int64Type{}},
			{Name: "s", Type: &frame.StringType{}},
		}),
	})
	require.Nil(t, err)

	rows, err := f.Take(10)
	require.Nil(t, err)
	require.Equal(t, frame.Row{int64(1), "abc"}, rows[0])
	// uncastable field became a null marker
	require.Equal(t, frame.Row{nil, "def"}, rows[1])
}

func TestImportNilValues(t *testing.T) {
	eng := memory.CreateEngine(nil)
	path := writeTempFile(t, "1,x\n2,NA\n")

	f, err := Import(eng, path, &ImportOptions{NilValue: "NA"})
	require.Nil(t, err)

	rows, err := f.Take(10)
	require.Nil(t, err)
	require.Equal(t, frame.Row{int64(2), nil}, rows[1])
}

func TestImportDelimiterAndComments(t *testing.T) {
	eng := memory.CreateEngine(nil)
	path := writeTempFile(t, "# generated\n1|x\n2|y\n")

	f, err := Import(eng, path, &ImportOptions{Delimiter: '|', Comment: '#'})
	require.Nil(t, err)

	count, err := f.RowCount()
	require.Nil(t, err)
	require.Equal(t, int64(2), count)
}

func TestImportMissingFile(t *testing.T) {
	eng := memory.CreateEngine(nil)
	_, err := Import(eng, filepath.Join(t.TempDir(), "missing.csv"), nil)
	require.NotNil(t, err)
}
