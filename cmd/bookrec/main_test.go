package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestLoadRecords(t *testing.T) {
	t.Run("valid records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		content := `[
			{"isbn": "111", "title": "조선왕조실록", "authors": ["홍길동"], "subjects": ["역사"]},
			{"isbn": "222", "title": "한식의 기초"}
		]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		records, err := loadRecords(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "111", records[0].ISBN)
		assert.Equal(t, "조선왕조실록", records[0].Title)
		assert.Equal(t, []string{"홍길동"}, records[0].Authors)
		assert.Equal(t, []string{"역사"}, records[0].Subjects)
		assert.Empty(t, records[1].Authors)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadRecords(filepath.Join(t.TempDir(), "no_such.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := loadRecords(path)
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug level enabled", func(t *testing.T) {
		require.NoError(t, setupLogger(newContext("debug")))
		assert.True(t, slog.Default().Enabled(nil, slog.LevelDebug))
	})
}
