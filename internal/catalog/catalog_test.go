package catalog

import "testing"

func TestAssets(t *testing.T) {
	testCases := []struct {
		album     string
		wantLarge string
		wantSmall string
	}{
		{"Minecraft - Volume Alpha", AssetVolAlpha, AssetMinecraft},
		{"Minecraft - Volume Beta", AssetVolBeta, AssetMinecraft},
		{"Minecraft: Nether Update (Original Game Soundtrack)", AssetVolNether, AssetMinecraft},
		{"Minecraft: Caves & Cliffs (Original Game Soundtrack)", AssetVolCaves, AssetMinecraft},
		{"Minecraft: The Wild Update (Original Game Soundtrack)", AssetVolWild, AssetMinecraft},
		{"Minecraft: Trails & Tales (Original Game Soundtrack)", AssetVolTrails, AssetMinecraft},
		{"Minecraft: Tricky Trials (Original Game Soundtrack)", AssetVolTricky, AssetMinecraft},
		{"Minecraft: Chase the Skies (Original Game Soundtrack)", AssetVolChase, AssetMinecraft},
		{"Axolotl", AssetVolAquatic, AssetMinecraft},
		{"Dragon Fish", AssetVolAquatic, AssetMinecraft},
		{"Shuniji", AssetVolAquatic, AssetMinecraft},
		{"Album", AssetMinecraft, NoImage},
		{"", AssetMinecraft, NoImage},
		{"minecraft - volume alpha", AssetMinecraft, NoImage},
		{"Some Other Record", AssetMinecraft, NoImage},
	}

	for _, tc := range testCases {
		large, small := Assets(tc.album)
		if large != tc.wantLarge || small != tc.wantSmall {
			t.Errorf("Assets(%q): expected (%q, %q), got (%q, %q)", tc.album, tc.wantLarge, tc.wantSmall, large, small)
		}
	}
}

func TestFallbackNeverPairsSmallImage(t *testing.T) {
	for _, album := range []string{"", "Album", "C418 - Excursions", "Volume Alpha", "axolotl"} {
		large, small := Assets(album)
		if large == AssetMinecraft && small != NoImage {
			t.Errorf("Assets(%q): fallback large image paired with %q", album, small)
		}
	}
}

func TestAlbumLabel(t *testing.T) {
	testCases := []struct {
		album    string
		expected string
	}{
		{"Axolotl", AquaticAlbumLabel},
		{"Dragon Fish", AquaticAlbumLabel},
		{"Shuniji", AquaticAlbumLabel},
		{"Minecraft - Volume Beta", "Minecraft - Volume Beta"},
		{"Album", "Album"},
	}

	for _, tc := range testCases {
		if got := AlbumLabel(tc.album); got != tc.expected {
			t.Errorf("AlbumLabel(%q): expected %q, got %q", tc.album, tc.expected, got)
		}
	}
}

func TestWikiURL(t *testing.T) {
	testCases := []struct {
		album  string
		url    string
		hasURL bool
	}{
		{"Minecraft - Volume Alpha", "https://minecraft.wiki/w/Minecraft_-_Volume_Alpha", true},
		{
			"Minecraft: Caves & Cliffs (Original Game Soundtrack)",
			"https://minecraft.wiki/w/Minecraft:_Caves_&_Cliffs_(Original_Game_Soundtrack)",
			true,
		},
		{"Axolotl", "", false},
		{"Dragon Fish", "", false},
		{"Album", "", false},
	}

	for _, tc := range testCases {
		url, ok := WikiURL(tc.album)
		if ok != tc.hasURL || url != tc.url {
			t.Errorf("WikiURL(%q): expected (%q, %v), got (%q, %v)", tc.album, tc.url, tc.hasURL, url, ok)
		}
	}
}

func TestSongCategory(t *testing.T) {
	testCases := []struct {
		filename string
		expected string
	}{
		{"wet_hands.ogg", "Overworld Music"},
		{"axolotl.ogg", "Overworld Music"},
		{"pigstep.ogg", "Minecraft Music Disc"},
		{"lava_chicken.ogg", "Minecraft Music Disc"},
		{"11.ogg", "Minecraft Music Disc"},
		{"rubedo.ogg", "Nether Music"},
		{"the_end.ogg", "End Music"},
		{"alpha.ogg", "End Music"},
		{"/home/steve/music/sweden.ogg", "Overworld Music"},
		{`C:\Music\Minecraft\warmth.ogg`, "Nether Music"},
		{"Wet_Hands.ogg", "Minecraft Music"},
		{"wet_hands.mp3", "Minecraft Music"},
		{"", "Minecraft Music"},
	}

	for _, tc := range testCases {
		if got := CategoryLabel(tc.filename); got != tc.expected {
			t.Errorf("CategoryLabel(%q): expected %q, got %q", tc.filename, tc.expected, got)
		}
	}
}

func TestCategoryString(t *testing.T) {
	if CategoryMinecraft.String() != "Minecraft Music" {
		t.Errorf("Unexpected default label: %s", CategoryMinecraft)
	}
	if Category(42).String() != "Minecraft Music" {
		t.Errorf("Unknown categories must fall back, got %s", Category(42))
	}
}
