package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgshop/listingresolver/pkg/errors"
)

func TestExtractSteamAppID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		appID string
		ok    bool
	}{
		{
			name:  "store URL with trailing slug",
			input: "https://store.steampowered.com/app/1174180/Red_Dead_Redemption_2/",
			appID: "1174180",
			ok:    true,
		},
		{
			name:  "store URL without slug",
			input: "https://store.steampowered.com/app/440",
			appID: "440",
			ok:    true,
		},
		{
			name:  "rungame scheme",
			input: "steam://rungame/730",
			appID: "730",
			ok:    true,
		},
		{
			name:  "store URL without app segment",
			input: "https://store.steampowered.com/wishlist",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appID, ok := ExtractSteamAppID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.appID, appID)
		})
	}
}

func TestExtractPSNProductID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		id    string
		ok    bool
	}{
		{
			name:  "full product URL",
			input: "https://store.playstation.com/en-gb/product/EP9000-PPSA01284_00",
			id:    "EP9000-PPSA01284_00",
			ok:    true,
		},
		{
			name:  "product URL with other region",
			input: "https://store.playstation.com/de-de/product/EP9000-PPSA01284_00",
			id:    "EP9000-PPSA01284_00",
			ok:    true,
		},
		{
			name:  "product URL with suffix",
			input: "https://store.playstation.com/en-gb/product/EP9000-PPSA01284_00-GHOSTOFYOTEI0000",
			id:    "EP9000-PPSA01284_00-GHOSTOFYOTEI0000",
			ok:    true,
		},
		{
			name:  "legacy hash route",
			input: "https://store.playstation.com/#!/ja-jp/tid=CUSA07410_00",
			id:    "CUSA07410_00",
			ok:    true,
		},
		{
			name:  "bare dashed id",
			input: "EP9000-PPSA01284_00",
			id:    "EP9000-PPSA01284_00",
			ok:    true,
		},
		{
			name:  "bare dashed id lower case",
			input: "ep9000-ppsa01284_00",
			id:    "ep9000-ppsa01284_00",
			ok:    true,
		},
		{
			name:  "bare id without dash is reconstructed",
			input: "EP9000PPSA01284_00",
			id:    "EP9000-PPSA01284_00",
			ok:    true,
		},
		{
			name:  "plain words",
			input: "not-a-valid-url",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractPSNProductID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestExtractIdentifier(t *testing.T) {
	t.Run("steam URL", func(t *testing.T) {
		id, err := ExtractIdentifier("https://store.steampowered.com/app/1174180/Red_Dead_Redemption_2/")
		require.NoError(t, err)
		assert.Equal(t, PlatformSteam, id.Platform)
		assert.Equal(t, "1174180", id.ID)
	})

	t.Run("steam URL without app id", func(t *testing.T) {
		_, err := ExtractIdentifier("https://store.steampowered.com/wishlist")
		require.Error(t, err)
		assert.Equal(t, errors.KindIdentifierNotFound, errors.KindOf(err))
	})

	t.Run("playstation URL", func(t *testing.T) {
		id, err := ExtractIdentifier("https://store.playstation.com/ja-jp/product/EP9000-PPSA01284_00")
		require.NoError(t, err)
		assert.Equal(t, PlatformPSN, id.Platform)
		assert.Equal(t, "EP9000-PPSA01284_00", id.ID)
	})

	t.Run("playstation URL without product id", func(t *testing.T) {
		_, err := ExtractIdentifier("https://store.playstation.com/en-gb/pages/latest")
		require.Error(t, err)
		assert.Equal(t, errors.KindIdentifierNotFound, errors.KindOf(err))
	})

	t.Run("bare id", func(t *testing.T) {
		id, err := ExtractIdentifier("  EP9000-PPSA01284_00  ")
		require.NoError(t, err)
		assert.Equal(t, PlatformPSN, id.Platform)
		assert.Equal(t, "EP9000-PPSA01284_00", id.ID)
	})

	t.Run("raw id with suffix marker passes through verbatim", func(t *testing.T) {
		// Base longer than any recognized code shape; only the _NN marker
		// makes this PlayStation-shaped.
		id, err := ExtractIdentifier("superlongbase-x_12")
		require.NoError(t, err)
		assert.Equal(t, PlatformPSN, id.Platform)
		assert.Equal(t, "superlongbase-x_12", id.ID)
	})

	t.Run("unsupported input", func(t *testing.T) {
		_, err := ExtractIdentifier("not-a-valid-url")
		require.Error(t, err)
		assert.Equal(t, errors.KindUnsupportedStore, errors.KindOf(err))
	})
}
