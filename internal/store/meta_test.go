package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rnleach/satfire/internal/satimage"
)

func TestOperationalSinceOverrideAbsentByDefault(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.OperationalSinceOverride(satimage.G16)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOperationalSinceOverrideRoundTrip(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.MetaSet(MetaKeyOperationalSinceOverridePrefix+string(satimage.G16), "2022-06-01"))

	got, ok, err := db.OperationalSinceOverride(satimage.G16)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2022, got.Year())
	require.Equal(t, 6, int(got.Month()))
	require.Equal(t, 1, got.Day())

	_, ok, err = db.OperationalSinceOverride(satimage.G17)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOperationalSinceOverrideRejectsMalformedValue(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.MetaSet(MetaKeyOperationalSinceOverridePrefix+string(satimage.G16), "not-a-date"))

	_, _, err := db.OperationalSinceOverride(satimage.G16)
	require.Error(t, err)
}
