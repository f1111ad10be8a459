// Package catalog maps Minecraft soundtrack albums and files onto Discord
// asset keys and category labels. Every lookup is total: unknown input falls
// back to the generic Minecraft asset and category.
package catalog

import (
	"strings"
)

// Asset keys uploaded to the Discord application
const (
	AssetMinecraft = "mclogo"

	AssetVolAlpha   = "vol_alpha"
	AssetVolBeta    = "vol_beta"
	AssetVolNether  = "vol_nether"
	AssetVolCaves   = "vol_caves"
	AssetVolWild    = "vol_wild"
	AssetVolTrails  = "vol_trails"
	AssetVolTricky  = "vol_tricky"
	AssetVolChase   = "vol_chase"
	AssetVolAquatic = "vol_aquatic"
)

// NoImage is the empty marker returned for a missing secondary image.
// Never hand it to the presence client: an empty small image key hangs the
// Discord connection.
const NoImage = ""

// AquaticAlbumLabel replaces the album line for Update Aquatic tracks, which
// were never released on an album of their own.
const AquaticAlbumLabel = "Update Aquatic (no official album)"

// WikiBaseURL prefixes album pages on the Minecraft wiki
const WikiBaseURL = "https://minecraft.wiki/w/"

var albumAssets = map[string]string{
	"Minecraft - Volume Alpha":                              AssetVolAlpha,
	"Minecraft - Volume Beta":                               AssetVolBeta,
	"Minecraft: Nether Update (Original Game Soundtrack)":   AssetVolNether,
	"Minecraft: Caves & Cliffs (Original Game Soundtrack)":  AssetVolCaves,
	"Minecraft: The Wild Update (Original Game Soundtrack)": AssetVolWild,
	"Minecraft: Trails & Tales (Original Game Soundtrack)":  AssetVolTrails,
	"Minecraft: Tricky Trials (Original Game Soundtrack)":   AssetVolTricky,
	"Minecraft: Chase the Skies (Original Game Soundtrack)": AssetVolChase,
}

// Update Aquatic singles are tagged with their own title as album
var aquaticAlbums = map[string]struct{}{
	"Axolotl":     {},
	"Dragon Fish": {},
	"Shuniji":     {},
}

// IsAquatic reports whether album belongs to the Update Aquatic group
func IsAquatic(album string) bool {
	_, ok := aquaticAlbums[album]
	return ok
}

// Assets returns the (large, small) image keys for album. The small image is
// NoImage whenever the large image is the generic fallback.
func Assets(album string) (string, string) {
	if IsAquatic(album) {
		return AssetVolAquatic, AssetMinecraft
	}

	large, ok := albumAssets[album]
	if !ok {
		return AssetMinecraft, NoImage
	}
	return large, AssetMinecraft
}

// AlbumLabel returns the album line to display
func AlbumLabel(album string) string {
	if IsAquatic(album) {
		return AquaticAlbumLabel
	}
	return album
}

// WikiURL returns the wiki page of a catalog album. Aquatic singles and
// albums outside the catalog have no page.
func WikiURL(album string) (string, bool) {
	if IsAquatic(album) {
		return "", false
	}
	if _, ok := albumAssets[album]; !ok {
		return "", false
	}
	return WikiBaseURL + strings.ReplaceAll(album, " ", "_"), true
}
