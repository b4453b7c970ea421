package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledger/scaledger/internal/model"
)

func TestParseDecimalFlag(t *testing.T) {
	d, err := parseDecimalFlag("-25.50", "amount")
	require.NoError(t, err)
	assert.Equal(t, "-25.5", d.String())

	_, err = parseDecimalFlag("twelve", "amount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDateFlag("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseDateFlag("05/01/2024")
	assert.Error(t, err)
}

func TestBuildTxPatch(t *testing.T) {
	changed := func(names ...string) func(string) bool {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		return func(name string) bool { return set[name] }
	}

	t.Run("only changed flags populate the patch", func(t *testing.T) {
		patch, err := buildTxPatch(changed("amount", "notes"),
			"", "", "99.95", "", "corrected", "", "")
		require.NoError(t, err)

		require.NotNil(t, patch.Amount)
		assert.Equal(t, "99.95", patch.Amount.String())
		require.NotNil(t, patch.Notes)
		assert.Equal(t, "corrected", *patch.Notes)
		assert.Nil(t, patch.Type)
		assert.Nil(t, patch.Timestamp)
	})

	t.Run("type flag is validated", func(t *testing.T) {
		patch, err := buildTxPatch(changed("type"),
			"", "Sale", "", "", "", "", "")
		require.NoError(t, err)
		require.NotNil(t, patch.Type)
		assert.Equal(t, model.TypeSale, *patch.Type)

		_, err = buildTxPatch(changed("type"),
			"", "Refund", "", "", "", "", "")
		assert.Error(t, err)
	})

	t.Run("date flag becomes a wire timestamp", func(t *testing.T) {
		patch, err := buildTxPatch(changed("date"),
			"", "", "", "", "", "", "2024-05-01")
		require.NoError(t, err)
		require.NotNil(t, patch.Timestamp)
		assert.Equal(t, "2024-05-01T00:00:00Z", *patch.Timestamp)
	})

	t.Run("no changed flags is an error", func(t *testing.T) {
		_, err := buildTxPatch(changed(), "", "", "", "", "", "", "")
		assert.Error(t, err)
	})
}
