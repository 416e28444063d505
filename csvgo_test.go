package csvgo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vderic/csvgo/csv"
	"github.com/vderic/csvgo/errs"
)

func TestScanReader(t *testing.T) {
	input := "id,name,region\n1,\"Ada, L.\",\\N\n2,Grace,west\n"

	var rows [][]string
	var nulls []bool
	err := ScanReader(strings.NewReader(input), func(row int64, fields *csv.Fields) error {
		rows = append(rows, fields.Strings())
		nulls = append(nulls, fields.IsNull(fields.Len()-1))
		return nil
	}, csv.WithNullSentinel(`\N`))
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"id", "name", "region"},
		{"1", "Ada, L.", ""},
		{"2", "Grace", "west"},
	}, rows)
	assert.Equal(t, []bool{false, true, false}, nulls)
}

func TestScanReaderStop(t *testing.T) {
	seen := 0
	err := ScanReader(strings.NewReader("a\nb\nc\n"), func(int64, *csv.Fields) error {
		seen++
		return errs.ErrStopScan
	})
	require.ErrorIs(t, err, errs.ErrStopScan)
	assert.Equal(t, 1, seen)
}

func TestScanReaderInvalidOption(t *testing.T) {
	err := ScanReader(strings.NewReader(""), func(int64, *csv.Fields) error {
		return nil
	}, csv.WithQuote(0))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestScanFile(t *testing.T) {
	content := "sku,qty\nwidget,41\nbolt,\\N\n"
	dir := t.TempDir()

	collect := func(path string) [][]string {
		t.Helper()
		var rows [][]string
		err := ScanFile(path, func(_ int64, fields *csv.Fields) error {
			rows = append(rows, fields.Strings())
			return nil
		}, csv.WithNullSentinel(`\N`))
		require.NoError(t, err)
		return rows
	}

	want := [][]string{{"sku", "qty"}, {"widget", "41"}, {"bolt", ""}}

	t.Run("Plain", func(t *testing.T) {
		path := filepath.Join(dir, "plain.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		assert.Equal(t, want, collect(path))
	})

	t.Run("Gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(dir, "input.csv.gz")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
		assert.Equal(t, want, collect(path))
	})

	t.Run("Zstd", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := filepath.Join(dir, "input.csv.zst")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
		assert.Equal(t, want, collect(path))
	})

	t.Run("Missing", func(t *testing.T) {
		err := ScanFile(filepath.Join(dir, "absent.csv"), func(int64, *csv.Fields) error {
			return nil
		})
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, xxhash.Sum64String("customer-42"), FieldKey("customer-42"))
	assert.NotEqual(t, FieldKey("a"), FieldKey("b"))

	// Keys line up with parsed field bytes.
	var got uint64
	err := ScanReader(strings.NewReader("customer-42,x\n"), func(_ int64, fields *csv.Fields) error {
		got = xxhash.Sum64(fields.Field(0))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, FieldKey("customer-42"), got)
}
