// Package config manages user settings in ~/.layergen/config.yaml using
// Viper. Settings can be overridden with LAYERGEN_-prefixed environment
// variables.
package config
