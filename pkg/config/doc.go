// Package config loads the operator-facing exporter options.
//
// The options file is YAML using the same keys as the charm configuration:
//
//	exporter-port: 10000
//	exporter-log-level: INFO
//	collect-timeout: 10
//	redfish-host: https://10.0.0.5
//	redfish-username: admin
//	redfish-password: secret
//	tools: [storcli, ipmi_sensor]
//
// Missing keys keep their defaults, unknown keys are rejected, and the log
// level is accepted in any case.
package config
