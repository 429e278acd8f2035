// Package startup handles configuration loading and the structured startup
// and shutdown log output.
package startup
