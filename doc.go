// Package writium holds the values shared by every package in a writium app:
// the [Environment] it runs in, context keys, and sentinel errors.
//
// The routing core lives in package api and the memoizing cache in package cache.
package writium
