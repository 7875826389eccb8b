package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetConfigParam(t *testing.T) {
	defer func(old bool) { UseTT = old }(UseTT)

	require.NoError(t, SetConfigParam("UseTT", 0))
	require.False(t, UseTT)
	require.NoError(t, SetConfigParam("UseTT", 1))
	require.True(t, UseTT)
}

func TestSetConfigParamRange(t *testing.T) {
	defer func(old int) { SearchCutoffPercent = old }(SearchCutoffPercent)

	require.Error(t, SetConfigParam("SearchCutoffPercent", 0))
	require.Error(t, SetConfigParam("SearchCutoffPercent", 101))
	require.NoError(t, SetConfigParam("SearchCutoffPercent", 75))
	require.Equal(t, 75, SearchCutoffPercent)
}

func TestSetConfigParamUnknown(t *testing.T) {
	require.Error(t, SetConfigParam("NoSuchParam", 1))
}

func TestGetConfigParamsRoundTrip(t *testing.T) {
	for _, param := range GetConfigParams() {
		val := param.Get()
		require.GreaterOrEqual(t, val, param.Min, param.Descr)
		require.LessOrEqual(t, val, param.Max, param.Descr)
	}
}
