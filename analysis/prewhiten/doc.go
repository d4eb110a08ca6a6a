// Package prewhiten extracts sinusoids from a light curve by iterative
// prewhitening.
//
// Every step removes the current model from the flux, finds the strongest
// remaining periodogram peak, appends it, refines sinusoids that are no longer
// resolved from the newcomer and keeps the extension only while the Bayesian
// Information Criterion improves. Further operations lock sinusoids to exact
// harmonics of an orbital period, add missing harmonics, and reduce the model
// by removing or merging sinusoids.
//
// A Series holds the zero-referenced time stamps, flux and errors. All
// phases in a Result refer to the zero-referenced time axis (t - Series.T0).
package prewhiten
