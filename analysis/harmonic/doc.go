// Package harmonic classifies frequencies as integer multiples of an
// orbital frequency and groups frequencies that lie within the Rayleigh
// resolution of each other.
//
// All functions are pure: they never modify their inputs and return freshly
// allocated index sets, so repeated calls on the same arguments give
// identical results.
package harmonic
