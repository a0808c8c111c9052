// Package hwtool describes the hardware-management tools the hardware exporter
// understands and the collectors each one enables.
//
// Detection of which tools are usable on a host happens elsewhere; this
// package only consumes the resulting whitelist:
//
//	w := hwtool.ParseWhitelist("storcli,ipmi_sensor")
//	w.Collectors() // ["collector.mega_raid", "collector.ipmi_sensor"]
//
// Tools missing from the mapping are ignored rather than rejected so a newer
// detector can report tools this agent does not know about yet.
package hwtool
