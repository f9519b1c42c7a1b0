// Package config provides configuration structures and utilities for
// clean-recently-used. It defines the purge targets, the optional YAML
// configuration file and the XDG directories the tool reads and writes.
package config
