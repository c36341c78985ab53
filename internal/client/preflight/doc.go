// Package preflight keeps a cache of signed upload destinations and fetches
// them ahead of need, in batches, so that a file finishing compression can
// start its transfer without waiting on the issuing service.
package preflight
