// Package telemetry reports anonymous usage of forge.
//
// Reports are sent at most once per UTC day for each project and once per day
// for the device, and only after the user has been shown a one-time
// disclosure. Nothing is sent on the run that shows the disclosure. Telemetry
// is skipped in CI, in production (FORGE_ENV=production), when
// FORGE_TELEMETRY_DISABLED=1, and after `forge telemetry disable`.
//
// The system reports:
// - Project: field type counts, number of lists, database provider,
//   versions of the forge modules in use
// - Device: operating system and Go release
//
// The system does NOT collect:
// - Project paths, names, or content
// - Any identifier for the user or the machine
//
// Failures never reach the user: every error is logged to the telemetry debug
// channel (FORGE_TELEMETRY_DEBUG=1 or --debug) and dropped.
//
// Files in this package:
// - engine.go: Run, the consent and cadence state machine
// - cadence.go: Decide, the pure decision over a stored value and a date
// - control.go: status, enable, disable, reset, inform
// - events.go: project and device report builders
// - client.go, http.go: event delivery
// - settings.go: environment settings
// - disclosure.go: the disclosure notice
// - types.go: report types
package telemetry
