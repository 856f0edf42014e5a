/*
Package fx implements the animation engine: a scheduler object which drives
style interpolation over time and sequences work per DOM node.

Overview

An Engine owns two pieces of mutable state:

■ the active-animation registry, mapping a node to the ordered list of its
running animations,

■ the queue map, mapping a node to named channels of pending tasks.

Animations are stepped by a shared frame loop. The loop is started lazily when
the first animation is registered and stops requesting frames as soon as the
registry runs empty. Progress is computed from elapsed wall-clock time, not
from the number of frames seen, so skipped frames never stretch an animation.

Every operation of the engine, including each frame, executes as an atomic unit
of work. Step callbacks and queue tasks may call back into the engine (e.g.,
stop the animations of the very node they are working on); the engine lock is
re-entrant for the goroutine holding it. Queue tasks run on goroutines of their
own and the engine lock is not held while a task executes.

Nodes are opaque to the engine. Any comparable type will do; package query
uses *html.Node.

Cancellation

Stopping an animation either finishes it (jump to progress 1, apply a final
step, settle successfully) or abandons it (leave the style as is, settle with
ErrStopped). A queue task returning an error discards the rest of its channel.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fx

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domfx.fx'.
func tracer() tracing.Trace {
	return tracing.Select("domfx.fx")
}
