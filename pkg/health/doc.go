// Package health keeps the hardware exporter running.
//
// A Check asks the exporter whether its service has failed. If it has, the
// exporter is restarted and checked again after a short wait, up to a fixed
// number of attempts. An exporter that is still failed afterwards is reported
// as crashed so the caller can surface a blocked status.
//
// Run repeats Check on an interval and is what `hwobserver serve` drives.
package health
