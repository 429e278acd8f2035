// Package media provides image handling utilities, currently thumbnail
// generation with an on-disk cache. Thumbnails are decoded with the
// standard image codecs plus WebP, resized with disintegration/imaging and
// cached as JPEG.
package media
