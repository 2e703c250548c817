// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle from loading a build
// description to writing the handoff artifacts, decoupled from any specific
// entrypoint like a CLI.
package app
