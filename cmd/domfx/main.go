/*
Command domfx runs effects on HTML documents, headlessly.

	domfx run --in page.html --select .box --effect fade-out --duration 300ms
	domfx tree --in page.html

The run command parses a document, starts an effect on the selected
elements, drives it on a real-time frame clock and writes the resulting
document. The tree command prints a document's tree.

Settings may be given as flags, as environment variables with prefix
DOMFX_ (e.g. DOMFX_FRAME_INTERVAL=8ms) or in a YAML configuration file
.domfx.yaml in the home directory or the current directory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domfx.cli'.
func tracer() tracing.Trace {
	return tracing.Select("domfx.cli")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
