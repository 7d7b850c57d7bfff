/*
Package iconset turns a single artwork, usually an SVG file, into ready to ship
application icons and image sets: Windows ICO and macOS ICNS containers, the
Linux, Android and iOS icon PNG sets, wallpaper sized exports and custom single
file exports in PNG, JPG, PDF or BMP format.

The package provides a command line interface, supporting various flags for the
export settings. To check the supported commands type:

	$ iconset --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/iconset"
	)

	func main() {
		e := iconset.NewExporter(iconset.BackendBuiltin, nil)

		paths, err := e.Export(iconset.Job{
			Source:  "logo.svg",
			Profile: iconset.Windows,
			Params:  iconset.DefaultParams(),
			OutDir:  "build",
		})
		if err != nil {
			fmt.Printf("Error exporting the icons: %s", err.Error())
		}
		fmt.Println(paths)
	}
*/
package iconset
