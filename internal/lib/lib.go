// Package lib groups helpers that do not belong to a single layer:
// password hashing and output utilities.
package lib
