// Package library models the on-disk image library: immediate
// subdirectories of the root are image sets, each optionally tagged via a
// sidecar metadata file. The Scanner turns one pass over the library into an
// immutable Snapshot of image and folder records.
package library
