// Package loader reads the input document and turns it into an ordered
// slice of items. The whole array is held in memory.
package loader
