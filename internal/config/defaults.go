package config

const (
	defaultWallpaperRoot    = "~/Pictures/wallpaper"
	defaultLogDir           = "~/.local/share/wallpipe/logs"
	defaultDownloadSubdir   = "downloaded"
	defaultCuratedSubdir    = "curated"
	defaultFilteredSubdir   = "filtered"
	defaultFetchBinary      = "gallery-dl"
	defaultFetchAbortAfter  = 20
	defaultFetchTimeout     = 1800
	defaultMinWidth         = 1920
	defaultMinHeight        = 1080
	defaultMaxPerArtist     = 25
	defaultHashAlgorithm    = "average"
	defaultScorerURL        = "http://127.0.0.1:8765"
	defaultMinScore         = 6.0
	defaultGeneralThreshold = 0.80
	defaultNSFWThreshold    = 0.70
	defaultRequestTimeout   = 120
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// SkipBWMinSaturation is the median saturation cutoff applied by the
// --skip-bw shorthand. Images whose median saturation falls below it are
// treated as black-and-white and rejected.
const SkipBWMinSaturation = 0.08

// DefaultArtistSources returns the built-in artist roster used when the
// [artists] config section is absent. Keys are directory slugs; values are
// gallery URLs handed to gallery-dl.
func DefaultArtistSources() map[string][]string {
	return map[string][]string{
		"maciej_kuciara": {
			"https://www.artstation.com/maciej",
			"https://www.behance.net/maciejkuciara",
		},
		"jama_jurabaev": {
			"https://www.artstation.com/jama",
			"https://jamajurabaev.deviantart.com/",
		},
		"ian_mcque": {
			"https://www.artstation.com/mcque65",
			"https://mcque.deviantart.com/",
		},
		"paul_chadeisson": {
			"https://www.artstation.com/pao",
			"https://www.behance.net/paulchadei99e8",
			"https://paooo.deviantart.com/",
		},
		"sparth": {
			"https://www.artstation.com/sparth",
		},
		"jan_urschel": {
			"https://www.artstation.com/janurschel",
			"https://www.behance.net/janurschel",
			"https://janurschel.deviantart.com/",
		},
		"rob_tuytel": {
			"https://www.artstation.com/tuytel",
		},
		"ian_hubert": {
			"https://www.artstation.com/ianhubert",
			"https://www.deviantart.com/mrdodobird",
		},
	}
}

// defaultBlockKeywordsGeneral lists subjects that rarely make good
// wallpapers. Split from the NSFW list so thresholds and prompt phrasing
// can differ per bucket.
var defaultBlockKeywordsGeneral = []string{
	"car",
	"tank",
	"weapon",
	"gun",
	"rifle",
	"pistol",
	"mech",
	"robot",
	"soldier",
	"war",
	"zombie",
	"monster",
	"bike",
	"motorcycle",
	"motorbike",
	"wireframe",
	"game asset",
	"albedo",
	"diffuse",
	"normal map",
	"roughness",
	"metallic",
	"ao map",
	"specular",
	"height map",
}

var defaultBlockKeywordsNSFW = []string{
	"nude",
	"naked",
	"nsfw",
	"porn",
	"explicit",
	"gore",
	"violence",
	"sex",
	"sexual",
	"erotic",
	"hardcore",
	"hentai",
	"breast",
	"boobs",
	"nipple",
	"genitals",
	"penis",
	"vagina",
	"cum",
	"semen",
	"orgasm",
	"ejaculation",
	"masturbation",
	"fetish",
	"xxx",
	"escort",
	"onlyfans",
	"strip",
	"camgirl",
}

// DefaultBlockKeywordsGeneral returns a copy of the built-in general blocklist.
func DefaultBlockKeywordsGeneral() []string {
	out := make([]string, len(defaultBlockKeywordsGeneral))
	copy(out, defaultBlockKeywordsGeneral)
	return out
}

// DefaultBlockKeywordsNSFW returns a copy of the built-in NSFW blocklist.
func DefaultBlockKeywordsNSFW() []string {
	out := make([]string, len(defaultBlockKeywordsNSFW))
	copy(out, defaultBlockKeywordsNSFW)
	return out
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WallpaperRoot: defaultWallpaperRoot,
			LogDir:        defaultLogDir,
		},
		Fetch: Fetch{
			Binary:         defaultFetchBinary,
			AbortAfter:     defaultFetchAbortAfter,
			TimeoutSeconds: defaultFetchTimeout,
		},
		Curate: Curate{
			MinWidth:      defaultMinWidth,
			MinHeight:     defaultMinHeight,
			MaxPerArtist:  defaultMaxPerArtist,
			MinSaturation: 0,
			DedupHamming:  0,
			HashAlgorithm: defaultHashAlgorithm,
			ClearDest:     true,
		},
		Filter: Filter{
			ScorerURL:      defaultScorerURL,
			MinScore:       defaultMinScore,
			BlockThreshold: defaultGeneralThreshold,
			NSFWThreshold:  defaultNSFWThreshold,
			RequestTimeout: defaultRequestTimeout,
			ClearDest:      true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
