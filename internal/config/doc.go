// Package config loads and validates application configuration from
// environment variables and an optional config file. Environment variables
// use the WOO_ prefix and take precedence over file values.
package config
