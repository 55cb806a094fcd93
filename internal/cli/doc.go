// Package cli parses command-line arguments, validates user input and maps
// failures to exit codes. It translates flags into app.Config.
package cli
