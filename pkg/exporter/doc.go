// Package exporter manages the lifecycle of the hardware exporter service.
//
// An Exporter composes three collaborators:
//
//   - render.Renderer turns templates into the config file and systemd unit
//   - installer.Installer writes and removes those files
//   - systemd.Manager starts, stops and queries the service
//
// # States
//
// The exporter is installed exactly when both the config file and the unit
// file exist. Nothing is cached: every operation re-checks the filesystem.
//
//	Uninstalled --Install--> Installed --Uninstall--> Uninstalled
//
// Start, Stop, Restart, Enable, Disable, CheckActive and CheckHealth require
// the installed state. Without it they log, return an error with code
// NOT_INSTALLED and leave the service manager alone.
//
// # Errors
//
// Install and Uninstall report filesystem problems as false with a nil error.
// A non-nil error from either (a template or service manager failure) is a
// StructuredError and means the caller should stop and surface it.
//
// # Usage
//
//	exp := exporter.New(exporter.DefaultConfig(charmDir), systemd.NewDBusManager(),
//	    exporter.WithWhitelist(hwtool.Whitelist{hwtool.StorCLI}))
//
//	ok, err := exp.Install(ctx, exporter.RenderParams{Port: 10000, Level: "INFO", CollectTimeout: 10})
//	if err != nil {
//	    return err
//	}
//	if ok {
//	    _ = exp.Enable(ctx)
//	    _ = exp.Start(ctx)
//	}
package exporter
