// Package puppet is an articulated skeleton with observer-mirrored views for
// [Ebitengine].
//
// A skeleton is a tree of [Joint] values. Each joint has a length and three
// Euler angles; its local transform is Rx·Ry·Rz·Translate(0, 0, length), and
// its world transform is the parent's world transform times the local one.
// Joints are drawn either as a segment from the parent's end to their own
// end, or as a closed polygon of local points carried by the world transform.
//
// # Quick start
//
//	root := puppet.NewHumanoid()
//	fig, _ := puppet.NewFigure(root)
//	canvas := puppet.NewCanvas(puppet.CanvasConfig{})
//	fig.NewView(canvas, puppet.FrontProjection(50, 200, 200))
//	fig.NewView(canvas, puppet.SideProjection(50, 600, 200))
//	puppet.Run(fig, canvas, puppet.RunConfig{Width: 800, Height: 400})
//
// # Views
//
// A [View] mirrors the skeleton node for node through one fixed
// world-to-screen matrix. The first propagation creates one primitive per
// joint on a [Surface]; every later propagation updates those primitives in
// place, so handles stay stable for the life of the view. Views check their
// topology against the skeleton before drawing and return a
// [*TopologyError] on mismatch; call [View.Rebuild] after changing the tree.
//
// # Figures
//
// [Figure] is the coordinator. It indexes joints by name, applies pose edits
// (directly, from other goroutines via [Figure.QueueRotation], from tweens
// built on [gween], or from a JSON [PoseScript]) and refreshes every view in
// one all-or-nothing pass. Pose edits can be forwarded to a [Donburi] world
// through the puppet/ecs adapter.
//
// # Output
//
// [Canvas] is the in-memory Surface. It can be drawn to an ebiten image,
// serialized as SVG with [Canvas.WriteSVG], or rasterized headlessly with
// [Canvas.Rasterize] and written as PNG or WebP snapshots.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package puppet
