// Package config provides configuration management for infobubble.
//
// This package implements a layered configuration system. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (embedded in binary)
//     - Bubble geometry sized for terminal cells
//
//  2. User Configuration (~/.config/infobubble/config.yaml)
//
//  3. Project Configuration (./.infobubble/config.yaml)
//
//  4. Explicit file passed with --config, YAML or TOML by extension
//
// Bubble settings are pointers so that a layer only overrides what it
// names. Markers are merged by name.
//
// # Configuration Structure
//
//	bubble:
//	  padding: 1
//	  shadowStyle: 2
//	  borderColor: "${BUBBLE_BORDER:-#7d7d7d}"
//
//	map:
//	  center: {lat: 52.5, lng: 13.4}
//	  zoom: 2
//	  width: 100
//	  height: 30
//
//	markers:
//	  - name: "office"
//	    lat: 52.52
//	    lng: 13.40
//	    content: "<b>Office</b><br>Open 9 to 5"
//	  - name: "depot"
//	    lat: 52.40
//	    lng: 13.10
//	    tabs:
//	      - label: "Stock"
//	        content: "<ul><li>crates</li><li>pallets</li></ul>"
//	      - label: "Staff"
//	        content: "3 on shift"
//
// String values may reference the environment as ${VAR} or
// ${VAR:-default}.
//
// # Live Reload
//
// Watcher follows the same files with fsnotify and hands every reloaded
// Config to a callback. The demo forwards it into its Bubble Tea program.
package config
