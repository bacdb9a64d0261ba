// Package window provides the analysis windows used to measure rendered
// sub-oscillator output: rectangular, Hann and 4-term Blackman-Harris.
package window
