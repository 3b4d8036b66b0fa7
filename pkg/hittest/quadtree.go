// Package hittest builds a spatial index over a computed layout's node
// and link geometry and answers point/rectangle hit-test queries, e.g.
// resolving a mouse click or a drag-select rectangle in grid coordinates
// to the node(s) and link(s) under it.
package hittest

// Rect is an axis-aligned bounding box in grid coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// NewRect creates a rectangle.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// ContainsPoint reports whether the rectangle contains (px, py).
func (r Rect) ContainsPoint(px, py float64) bool {
	return px >= r.X && px <= r.X+r.Width && py >= r.Y && py <= r.Y+r.Height
}

// Intersects reports whether r and other overlap, edges included, so a
// zero-width or zero-height rectangle lying on other's border counts.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width && r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height && r.Y+r.Height >= other.Y
}

// quadItem is an element stored in the tree: a bounding box plus the
// hit-test payload it resolves to.
type quadItem struct {
	bounds Rect
	data   HitElement
}

// quadTree is a spatial index over quadItems. Nodes and links are both
// zero-width-or-zero-height rectangles (horizontal and vertical line
// segments, respectively), so the same tree indexes both without a
// separate structure per element kind.
type quadTree struct {
	bounds   Rect
	maxItems int
	maxDepth int
	depth    int

	items    []quadItem
	children *[4]*quadTree // nil until this node splits
}

func newQuadTree(bounds Rect, maxItems, maxDepth, depth int) *quadTree {
	return &quadTree{bounds: bounds, maxItems: maxItems, maxDepth: maxDepth, depth: depth}
}

// insert adds item to the tree, splitting this node into four quadrants
// once it exceeds maxItems (and hasn't hit maxDepth). An item that
// straddles more than one quadrant after a split is kept at this node
// rather than duplicated into every quadrant it touches, since
// duplicate-free queries are simpler for a caller building a selection
// set than deduping hits across quadrant boundaries would be.
func (q *quadTree) insert(item quadItem) {
	if q.children != nil {
		if child := q.childFor(item.bounds); child != nil {
			child.insert(item)
			return
		}
		q.items = append(q.items, item)
		return
	}

	q.items = append(q.items, item)
	if len(q.items) > q.maxItems && q.depth < q.maxDepth {
		q.split()
	}
}

// split divides this node into four quadrants and redistributes items
// that fit entirely within one child; items spanning a quadrant boundary
// remain at this node.
func (q *quadTree) split() {
	halfW := q.bounds.Width / 2
	halfH := q.bounds.Height / 2
	x, y := q.bounds.X, q.bounds.Y

	children := [4]*quadTree{
		newQuadTree(NewRect(x, y, halfW, halfH), q.maxItems, q.maxDepth, q.depth+1),         // NW
		newQuadTree(NewRect(x+halfW, y, halfW, halfH), q.maxItems, q.maxDepth, q.depth+1),   // NE
		newQuadTree(NewRect(x, y+halfH, halfW, halfH), q.maxItems, q.maxDepth, q.depth+1),   // SW
		newQuadTree(NewRect(x+halfW, y+halfH, halfW, halfH), q.maxItems, q.maxDepth, q.depth+1), // SE
	}
	q.children = &children

	remaining := q.items[:0]
	for _, item := range q.items {
		if child := q.childFor(item.bounds); child != nil {
			child.insert(item)
		} else {
			remaining = append(remaining, item)
		}
	}
	q.items = remaining
}

// childFor returns the single child quadrant that fully contains bounds,
// or nil if bounds straddles more than one quadrant (or this node hasn't
// split yet).
func (q *quadTree) childFor(bounds Rect) *quadTree {
	if q.children == nil {
		return nil
	}
	for _, c := range q.children {
		if rectContains(c.bounds, bounds) {
			return c
		}
	}
	return nil
}

func rectContains(outer, inner Rect) bool {
	return inner.X >= outer.X && inner.X+inner.Width <= outer.X+outer.Width &&
		inner.Y >= outer.Y && inner.Y+inner.Height <= outer.Y+outer.Height
}

// query collects every item whose bounds intersect rng.
func (q *quadTree) query(rng Rect, out []quadItem) []quadItem {
	if !q.bounds.Intersects(rng) {
		return out
	}
	for _, item := range q.items {
		if item.bounds.Intersects(rng) {
			out = append(out, item)
		}
	}
	if q.children != nil {
		for _, c := range q.children {
			out = c.query(rng, out)
		}
	}
	return out
}

// len is the total number of items stored under this node.
func (q *quadTree) len() int {
	n := len(q.items)
	if q.children != nil {
		for _, c := range q.children {
			n += c.len()
		}
	}
	return n
}
