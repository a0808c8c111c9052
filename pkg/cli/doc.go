// Package cli implements the hwobserver command-line interface.
//
// # Overview
//
// hwobserver installs, configures and supervises the hardware-exporter
// systemd service. The whitelist of hardware tools present on the host is
// an input; hwobserver never detects hardware itself.
//
// # Commands
//
// Lifecycle:
//
//	hwobserver install [--start]    render and write config and unit, reload systemd
//	hwobserver uninstall            remove config and unit, reload systemd
//	hwobserver start|stop|restart   control the exporter service
//	hwobserver enable|disable       toggle start at boot
//
// Inspection:
//
//	hwobserver status [--format json|yaml|table]
//	hwobserver check                health check with automatic restarts
//
// Supervision:
//
//	hwobserver serve [--address ADDR] [--port 10100] [--interval 5m]
//
// serve runs the status server (/health, /ready, /status, /metrics) and the
// health monitor loop until interrupted.
//
// # Global Flags
//
//	--log-level   agent log level (debug, info, warn, error)
//	--config      options file (exporter-port, exporter-log-level, collect-timeout,
//	              redfish-host, redfish-username, redfish-password, tools)
//	--charm-dir   working directory of the exporter service
//	--tools       hardware tool whitelist, comma separated or repeated
//
// Every global flag can also be set from an HWOBSERVER_* environment variable,
// for example HWOBSERVER_TOOLS=storcli,ipmi_dcmi.
package cli
