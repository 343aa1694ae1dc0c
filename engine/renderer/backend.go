package renderer

import "github.com/spaghettifunk/threeview/engine/renderer/metadata"

// Host is the display system that owns the camera, the lights and the draw
// loop. It receives finished scene graphs and takes ownership of them until
// they are detached.
type Host interface {
	Attach(root *metadata.Node) error
	Detach(root *metadata.Node) error
}
