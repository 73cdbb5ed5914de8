// Package analysis holds the pure computations behind the trends pipeline:
// descriptive statistics, histograms, grouped counts, cross-tabulations, the
// chi-squared independence test, and the table-wide summary export.
package analysis
