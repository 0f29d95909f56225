// SPDX-License-Identifier: Apache-2.0

// Package watcher implements the headless application runtime.
//
// It wires the sync services and background workers into a single
// process lifecycle: start the sync job, block until a shutdown signal,
// stop cleanly.
package watcher
