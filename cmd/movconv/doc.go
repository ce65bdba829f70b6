// Package main hosts the movconv CLI entrypoint and command graph.
//
// Running movconv with no subcommand converts every .mov file in the input
// directory to .mp4 with ffmpeg, shows progress (a bar on a terminal,
// sampled log lines otherwise), and prints a summary. The check and config
// subcommands inspect the environment and scaffold configuration.
//
// Keep this package lean: conversion behaviour lives in internal/batch and
// the packages beneath it; this package only wires configuration, logging,
// and presentation.
package main
