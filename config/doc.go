// Package config loads and validates the module's YAML configuration:
// tariff parameters, quote-cache TTL, the system-open switch, the
// Postgres DSN and the notification broker settings.
//
// The file is parsed with gopkg.in/yaml.v3 and validated with
// go-playground/validator struct tags; Load fails on the first
// violation rather than running with a partially sane configuration.
package config
