// Package concurrency implements the adaptive transfer limit used by the
// upload engine: an additive-increase/multiplicative-decrease controller fed
// with per-transfer outcomes.
package concurrency
