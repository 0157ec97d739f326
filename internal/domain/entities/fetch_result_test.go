//go:build unit

package entities_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rawfetch/internal/domain/entities"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		size     int64
		expected string
	}{
		{"should render zero as bytes", 0, "0 Bytes"},
		{"should render a negative size as zero", -5, "0 Bytes"},
		{"should keep small sizes in bytes", 512, "512 Bytes"},
		{"should switch to kilobytes at 1024", 1024, "1 KB"},
		{"should keep fractional kilobytes", 1536, "1.5 KB"},
		{"should round to two decimals", 1234567, "1.18 MB"},
		{"should reach gigabytes", 5 * 1024 * 1024 * 1024, "5 GB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// when
			result := entities.FormatBytes(tc.size)

			// then
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestBatchResult(t *testing.T) {
	t.Parallel()

	t.Run("should encode a successful batch as an ordered array", func(t *testing.T) {
		t.Parallel()

		// given
		batch := entities.NewBatchSuccess([]entities.FetchResult{
			{
				SrcPath:   "a.txt",
				DestPath:  "/out/a.txt",
				Repo:      "owner/repo",
				Ref:       "main",
				Size:      3,
				HumanSize: "3 Bytes",
				SHA256:    "abc",
				TimeTaken: 7,
			},
		})

		// when
		data, err := json.Marshal(batch)

		// then
		require.NoError(t, err)
		assert.True(t, batch.Succeeded())
		assert.JSONEq(t, `[{
			"srcPath": "a.txt",
			"destPath": "/out/a.txt",
			"repo": "owner/repo",
			"ref": "main",
			"size": 3,
			"humanSize": "3 Bytes",
			"sha256": "abc",
			"timeTaken": 7
		}]`, string(data))
	})

	t.Run("should encode an empty batch as an empty array", func(t *testing.T) {
		t.Parallel()

		// given
		batch := entities.NewBatchSuccess(nil)

		// when
		data, err := json.Marshal(batch)

		// then
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("should expose only the cause of a failed batch", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("boom")

		// when
		batch := entities.NewBatchFailure(cause)

		// then
		assert.False(t, batch.Succeeded())
		assert.Nil(t, batch.Results())
		require.ErrorIs(t, batch.Err(), cause)
		_, err := json.Marshal(batch)
		require.Error(t, err)
	})
}
