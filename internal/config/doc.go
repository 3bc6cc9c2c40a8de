// Package config provides configuration structures and utilities for shoecheck.
// It defines the target site, the reminder smoke test parameters, the HTML
// selectors that describe the site layout, and report output preferences.
//
// Values are layered in this order, later layers winning:
// built-in defaults, the YAML configuration file, SHOECHECK_* environment
// variables, and command-line flags.
package config
