// Package cli turns command-line arguments into a validated app
// configuration. It owns the usage text, the flag surface, and the exit
// code contract; the actual work happens in the app package.
package cli
