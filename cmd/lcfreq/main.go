// Command lcfreq extracts the sinusoidal model of an eclipsing-binary light
// curve and locks its orbital harmonics.
//
// Usage:
//
//	lcfreq [flags] <light-curve>
//
// The light curve is a whitespace separated text file with columns time,
// flux and optionally flux error. Lines starting with '#' are ignored.
//
// Examples:
//
//	lcfreq star.dat
//	lcfreq --period 3.3 star.dat
//	lcfreq --config lcfreq.yaml --gap 5 --format json star.dat
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
