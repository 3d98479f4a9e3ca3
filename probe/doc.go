// Package probe builds readiness and liveness checks: the presence of the
// UI bundle on disk, the reachability of a remote API document, a MongoDB
// ping, or any custom ping function.
package probe
