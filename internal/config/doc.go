// Package config loads, normalizes, and validates movconv configuration data.
//
// It supplies repository defaults (mov/ in, mp4/ out, a local ffmpeg fallback
// under bin/ffmpeg), expands user paths including tilde shortcuts, reads TOML
// files, and honours environment fallbacks such as MOVCONV_FFMPEG. The Config
// type centralizes every knob the CLI and the conversion runner need.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
