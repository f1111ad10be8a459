package catalog

import "strings"

// Category is the in-game context a track plays in
type Category int

const (
	CategoryMinecraft Category = iota
	CategoryOverworld
	CategoryNether
	CategoryEnd
	CategoryDisc
)

// String returns the label shown as the large image text
func (c Category) String() string {
	switch c {
	case CategoryOverworld:
		return "Overworld Music"
	case CategoryNether:
		return "Nether Music"
	case CategoryEnd:
		return "End Music"
	case CategoryDisc:
		return "Minecraft Music Disc"
	default:
		return "Minecraft Music"
	}
}

var songCategories = buildSongTable(map[Category][]string{
	CategoryOverworld: {
		"aerie.ogg", "aria_math.ogg", "ancestry.ogg", "a_familiar_room.ogg",
		"an_ordinary_day.ogg", "below_and_above.ogg", "biome_fest.ogg", "blind_spots.ogg",
		"broken_clocks.ogg", "bromeliad.ogg", "clark.ogg", "comforting_memories.ogg",
		"crescent_dunes.ogg", "danny.ogg", "deeper.ogg", "dreiton.ogg",
		"dry_hands.ogg", "echo_in_the_wind.ogg", "eld_unknown.ogg", "endless.ogg",
		"featherfall.ogg", "firebugs.ogg", "fireflies.ogg", "floating_dream.ogg",
		"haggstrom.ogg", "haunt_muskie.ogg", "infinite_amethyst.ogg", "key.ogg",
		"komorebi.ogg", "labyrinthine.ogg", "left_to_bloom.ogg", "lilypad.ogg",
		"living_mice.ogg", "mice_on_venus.ogg", "minecraft.ogg", "one_more_day.ogg",
		"os_piano.ogg", "oxygene.ogg", "pokopoko.ogg", "puzzlebox.ogg",
		"stand_tall.ogg", "subwoofer_lullaby.ogg", "sweden.ogg", "taswell.ogg",
		"watcher.ogg", "wending.ogg", "wet_hands.ogg", "yakusoku.ogg",
		"axolotl.ogg", "dragon_fish.ogg", "shuniji.ogg",
	},
	CategoryNether: {
		"ballad_of_the_cats.ogg", "chrysopoeia.ogg", "concrete_halls.ogg", "dead_voxel.ogg",
		"rubedo.ogg", "so_below.ogg", "warmth.ogg",
	},
	CategoryEnd: {
		"boss.ogg", "the_end.ogg", "alpha.ogg",
	},
	CategoryDisc: {
		"11.ogg", "13.ogg", "5.ogg", "blocks.ogg", "cat.ogg", "chirp.ogg", "far.ogg",
		"mall.ogg", "mellohi.ogg", "stal.ogg", "strad.ogg", "wait.ogg", "precipice.ogg",
		"relic.ogg", "creator_music_box.ogg", "creator.ogg", "pigstep.ogg", "otherside.ogg",
		"ward.ogg", "tears.ogg", "lava_chicken.ogg",
	},
})

func buildSongTable(groups map[Category][]string) map[string]Category {
	table := make(map[string]Category)
	for category, files := range groups {
		for _, file := range files {
			table[file] = category
		}
	}
	return table
}

// SongCategory classifies a track by the base name of its source file
func SongCategory(filename string) Category {
	if category, ok := songCategories[baseName(filename)]; ok {
		return category
	}
	return CategoryMinecraft
}

// CategoryLabel is SongCategory rendered as its display label
func CategoryLabel(filename string) string {
	return SongCategory(filename).String()
}

// baseName strips directories using either path separator, since VLC may
// report Windows paths regardless of the host running this process.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		return filename[i+1:]
	}
	return filename
}
