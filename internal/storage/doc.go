// Package storage holds the working state of the presentation layer: the
// current product catalog and the last placement result of each strategy.
// State lives in memory only and is lost on restart.
package storage
