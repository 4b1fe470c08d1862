// Package config provides configuration structures and utilities for
// linkguard. It defines the run options populated from CLI flags and the
// optional .linkguard YAML file.
package config
