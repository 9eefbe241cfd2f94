package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagItems       = flag.String("items", "", "Path to the items sheet")
	flagIcons       = flag.String("icons", "", "Icon directory root")
	flagEncoding    = flag.String("encoding", "", "Items sheet text encoding (utf-8, euc-kr, shift-jis)")
	flagStore       = flag.String("store", "", "Outfit storage path")
	flagStoreDriver = flag.String("store-driver", "", "Outfit storage driver (yaml, sqlite)")
	flagPreview     = flag.String("preview", "", "Try-on integration (none, echo)")
	flagQuiet       = flag.Bool("quiet", false, "Do not print the try-on status on start")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagItems != "" {
		cfg.Data.ItemsPath = *flagItems
	}
	if *flagIcons != "" {
		cfg.Data.IconRoot = *flagIcons
	}
	if *flagEncoding != "" {
		cfg.Data.SheetEncoding = *flagEncoding
	}
	if *flagStore != "" {
		cfg.Storage.Path = *flagStore
	}
	if *flagStoreDriver != "" {
		cfg.Storage.Driver = *flagStoreDriver
	}
	if *flagPreview != "" {
		cfg.Preview.Integration = *flagPreview
	}
	if *flagQuiet {
		cfg.Preview.PrintStatusOnStart = false
	}
}
