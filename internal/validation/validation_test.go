package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"resource-catalog-api/internal/apierr"
)

func TestFields_AcceptsLegalNames(t *testing.T) {
	require.NoError(t, Fields(map[string]any{"name": "x", "_private": 1, "count2": 2}))
	require.NoError(t, Fields(map[string]any{}), "empty map passes the store-side check")
}

func TestFields_RejectsReservedNames(t *testing.T) {
	for _, name := range []string{"id", "created_at", "updated_at"} {
		err := Fields(map[string]any{name: "x"})
		require.True(t, apierr.IsKind(err, apierr.KindValidation), "name %q", name)
	}
}

func TestFields_RejectsIllegalNames(t *testing.T) {
	for _, name := range []string{"9lives", "has space", "dash-ed", ""} {
		err := Fields(map[string]any{name: "x"})
		require.True(t, apierr.IsKind(err, apierr.KindValidation), "name %q", name)
	}
}

func TestValidateCreate(t *testing.T) {
	v := New()

	require.NoError(t, ValidateCreate(v, map[string]any{"name": "alpha"}))

	err := ValidateCreate(v, map[string]any{})
	require.True(t, apierr.IsKind(err, apierr.KindValidation), "empty create rejected")

	err = ValidateCreate(v, map[string]any{"id": "override"})
	require.True(t, apierr.IsKind(err, apierr.KindValidation), "reserved name rejected")
}
