// Package systemd wraps the host service manager behind the Manager interface.
//
// DBusManager is the production implementation. It opens a system bus
// connection per call using github.com/coreos/go-systemd/v22/dbus, waits for
// queued jobs to complete, and maps unit state the way systemctl does:
//
//	is-active  <=> ActiveState == "active"
//	is-failed  <=> ActiveState == "failed"
//
// Enable and Disable reload the manager afterwards, matching systemctl.
// Errors are returned as StructuredError with code SERVICE_MANAGER and are not
// interpreted or retried here.
//
// FakeManager records calls and keeps unit state in memory for tests.
package systemd
