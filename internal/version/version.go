// ABOUTME: Version information for fivier
// ABOUTME: Shown in the TUI header and the startup log
package version

const (
	// Version is the current release
	Version = "0.1.0"

	// Product is the program name
	Product = "fivier"

	// Manufacturer is the author credit
	Manufacturer = "ahihi"
)
