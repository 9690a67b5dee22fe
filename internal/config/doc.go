// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is read from, in order of preference: the file passed with
// --config, config.cue in the platform config directory
// ($XDG_CONFIG_HOME/modrename on Linux, ~/Library/Application Support/modrename
// on macOS, %APPDATA%\modrename on Windows), or modrename.cue in the working
// directory. Files are validated against the embedded #Config schema
// (config_schema.cue) before being merged over the defaults, and
// MODRENAME_* environment variables override both.
package config
