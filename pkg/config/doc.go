// Package config loads apkren settings.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file, $XDG_CONFIG_HOME/apkren/config.toml
//  3. a file given explicitly (--config)
//  4. APKREN_<SECTION>_<KEY> environment variables
//  5. overrides passed by the caller, usually command-line flags
//
// The merged tree is decoded into Config with mapstructure, so durations
// may be written as strings ("30s") and lists as comma-separated values in
// the environment.
package config
