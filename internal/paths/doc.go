// Package paths resolves the directories and display paths used by matter.
//
// Configuration lives under the XDG config home, resolved through
// github.com/adrg/xdg:
//
//	paths.ConfigDir()  // ~/.config/matter on Linux
//
// User-supplied paths may start with "~" and are expanded with [Expand].
// Paths printed to the terminal are shortened relative to the content root
// with [Display].
package paths
