package puppet

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Remover is implemented by surfaces that can drop a primitive. View.Rebuild
// uses it to release primitives whose joints no longer exist.
type Remover interface {
	Remove(h Handle)
}

// ViewNode mirrors one joint by tree position. It owns at most one primitive
// handle, created on its first update and mutated in place afterwards.
type ViewNode struct {
	view     *View
	shape    Shape
	handle   Handle
	children []*ViewNode
	screen   []Vec2 // projected points, reused between updates
}

// Shape returns the primitive kind this node committed to at build time.
func (n *ViewNode) Shape() Shape {
	return n.shape
}

// Handle returns the node's primitive handle and whether it has been created.
func (n *ViewNode) Handle() (Handle, bool) {
	return n.handle, n.handle != 0
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *ViewNode) Children() []*ViewNode {
	return n.children
}

// NumChildren returns the number of children.
func (n *ViewNode) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *ViewNode) ChildAt(index int) *ViewNode {
	return n.children[index]
}

// ScreenPoints returns the projected points from the node's last update.
// The returned slice MUST NOT be mutated by the caller.
func (n *ViewNode) ScreenPoints() []Vec2 {
	return n.screen
}

// Update projects world-space points through the view's matrix and writes
// them to the node's primitive, creating it on the first call. Segment nodes
// take exactly 2 points and polygon nodes at least 3, all finite.
func (n *ViewNode) Update(points []mgl64.Vec4) error {
	switch n.shape {
	case ShapeSegment:
		if len(points) != 2 {
			return fmt.Errorf("%w: segment needs 2 points, got %d", ErrPointCount, len(points))
		}
	case ShapePolygon:
		if len(points) < 3 {
			return fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrPointCount, len(points))
		}
	}
	for _, p := range points {
		if !isFiniteVec4(p) {
			return &PoseError{Field: "point"}
		}
	}
	n.update(points)
	return nil
}

// update is Update without the count check; callers guarantee the count.
func (n *ViewNode) update(points []mgl64.Vec4) {
	v := n.view
	if cap(n.screen) < len(points) {
		n.screen = make([]Vec2, len(points))
	}
	n.screen = n.screen[:len(points)]
	for i, p := range points {
		s := v.worldToScreen.Mul4x1(p)
		n.screen[i] = Vec2{X: s[0], Y: s[1]}
	}

	if n.shape == ShapePolygon {
		if n.handle == 0 {
			n.handle = v.surface.CreatePolygon(n.screen)
			v.stats.creates++
		} else {
			v.surface.UpdatePolygon(n.handle, n.screen)
			v.stats.updates++
		}
		return
	}
	if n.handle == 0 {
		n.handle = v.surface.CreateLine(n.screen[0], n.screen[1])
		v.stats.creates++
	} else {
		v.surface.UpdateLine(n.handle, n.screen[0], n.screen[1])
		v.stats.updates++
	}
}

// viewStats counts primitive operations since the view was built.
type viewStats struct {
	creates int
	updates int
}

// View is one projection of a skeleton onto a Surface: a tree of ViewNodes
// mirroring the joint tree 1:1 plus a fixed world-to-screen matrix.
type View struct {
	Name string

	surface       Surface
	worldToScreen mgl64.Mat4
	skeleton      *Joint
	root          *ViewNode
	stats         viewStats
}

// BuildView builds a view over the joint tree rooted at root. Build it after
// the topology is final; it may be built before or after the first
// propagation. Panics if surface or root is nil or worldToScreen is
// non-finite.
func BuildView(name string, surface Surface, worldToScreen mgl64.Mat4, root *Joint) *View {
	if surface == nil {
		panic("puppet: view needs a surface")
	}
	if root == nil {
		panic("puppet: view needs a skeleton root")
	}
	if !isFiniteMat4(worldToScreen) {
		panic(fmt.Sprintf("puppet: view %q has a non-finite world-to-screen matrix", name))
	}
	v := &View{
		Name:          name,
		surface:       surface,
		worldToScreen: worldToScreen,
		skeleton:      root,
	}
	v.root = v.buildNode(root)
	return v
}

// BuildProjectedView builds a view named after p using p's matrix.
func BuildProjectedView(surface Surface, p Projection, root *Joint) *View {
	return BuildView(p.Name, surface, p.Matrix(), root)
}

func (v *View) buildNode(j *Joint) *ViewNode {
	n := &ViewNode{view: v, shape: j.shape}
	if len(j.children) > 0 {
		n.children = make([]*ViewNode, len(j.children))
		for i, c := range j.children {
			n.children[i] = v.buildNode(c)
		}
	}
	return n
}

// Root returns the view node mirroring the skeleton root.
func (v *View) Root() *ViewNode {
	return v.root
}

// Skeleton returns the joint tree the view mirrors.
func (v *View) Skeleton() *Joint {
	return v.skeleton
}

// Surface returns the surface the view draws to.
func (v *View) Surface() Surface {
	return v.surface
}

// WorldToScreen returns the view's fixed projection matrix.
func (v *View) WorldToScreen() mgl64.Mat4 {
	return v.worldToScreen
}

// Stats returns how many primitives the view created and how many in-place
// updates it issued since it was built.
func (v *View) Stats() (creates, updates int) {
	return v.stats.creates, v.stats.updates
}

// CheckTopology walks the view and skeleton trees in lockstep and reports the
// first node whose child count or shape diverges.
func (v *View) CheckTopology() error {
	return v.checkNode(v.root, v.skeleton)
}

func (v *View) checkNode(n *ViewNode, j *Joint) error {
	if len(n.children) != len(j.children) || n.shape != j.shape {
		return &TopologyError{
			View:          v.Name,
			Path:          j.Path(),
			ViewChildren:  len(n.children),
			JointChildren: len(j.children),
			ViewShape:     n.shape,
			JointShape:    j.shape,
		}
	}
	for i, c := range n.children {
		if err := v.checkNode(c, j.children[i]); err != nil {
			return err
		}
	}
	return nil
}

// Propagate pushes the skeleton's current world-space points into every
// view node. Segment joints send [WorldStart, WorldEnd]; polygon joints send
// their world polygon. The topology is checked first; on mismatch nothing is
// drawn and the view must be rebuilt. Joints that were never propagated
// have no world state, so they fail with ErrNotPropagated.
func (v *View) Propagate() error {
	if err := v.CheckTopology(); err != nil {
		return err
	}
	if j := firstUnpropagated(v.skeleton); j != nil {
		return fmt.Errorf("%w: %s", ErrNotPropagated, j.Path())
	}
	v.render(v.root, v.skeleton)
	return nil
}

func (v *View) render(n *ViewNode, j *Joint) {
	n.update(j.renderPoints())
	for i, c := range n.children {
		v.render(c, j.children[i])
	}
}

// Rebuild re-mirrors the skeleton after a topology change. Nodes whose tree
// position and shape still match keep their primitive; the rest start
// without one. Primitives left without a node are removed when the surface
// implements Remover.
func (v *View) Rebuild() {
	v.root = v.rebuildNode(v.root, v.skeleton)
}

func (v *View) rebuildNode(old *ViewNode, j *Joint) *ViewNode {
	if old == nil || old.shape != j.shape {
		v.release(old)
		return v.buildNode(j)
	}
	kept := make([]*ViewNode, len(j.children))
	for i, c := range j.children {
		var prev *ViewNode
		if i < len(old.children) {
			prev = old.children[i]
		}
		kept[i] = v.rebuildNode(prev, c)
	}
	for i := len(j.children); i < len(old.children); i++ {
		v.release(old.children[i])
	}
	old.children = kept
	return old
}

// release drops every primitive in n's subtree.
func (v *View) release(n *ViewNode) {
	if n == nil {
		return
	}
	if r, ok := v.surface.(Remover); ok && n.handle != 0 {
		r.Remove(n.handle)
	}
	n.handle = 0
	for _, c := range n.children {
		v.release(c)
	}
}
