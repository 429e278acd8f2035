// Package middleware provides HTTP middleware for access logging, request
// metrics, and gzip compression.
package middleware
