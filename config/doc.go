// Package config loads the engine's recognized options — keycache
// capacity and the illegal name lists — from a file, then the
// CHRONODB_-prefixed environment, then built-in defaults, in that
// order of precedence, the way the rest of this module's dependency
// stack reads configuration.
package config
