// Package config loads the objkit CLI configuration from .objkit.yaml.
package config
