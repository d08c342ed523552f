package tree

import (
	"sync/atomic"
	"unsafe"

	"github.com/benz9527/xcontainer/lib/alloc"
	"github.com/benz9527/xcontainer/lib/infra"
)

// rbNode owns its children through left and right. parent is a
// back-reference for traversal and fixup only, it never frees anything.
type rbNode[K any, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
	hasKV  bool
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) HasKeyVal() bool {
	if node == nil {
		return false
	}
	return node.hasKV
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) isNilLeaf() bool {
	return node == nil
}

func (node *rbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K, V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K, V]) isLeaf() bool {
	return node != nil && node.parent != nil && node.left.isNilLeaf() && node.right.isNilLeaf()
}

func (node *rbNode[K, V]) Direction() RBDirection {
	if node.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order.
// Both iterator flavours step through here.
func (node *rbNode[K, V]) pred() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (node *rbNode[K, V]) succ() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

// rbHeader is the state a tree hands over on Swap and MoveFrom. Iterators
// hold the header, not the tree, so they follow their nodes.
type rbHeader[K any, V any] struct {
	root           *rbNode[K, V]
	leftmost       *rbNode[K, V] // back-references, never owning
	rightmost      *rbNode[K, V]
	count          int64
	cmp            infra.Comparator[K]
	alloc          alloc.Allocator[rbNode[K, V]]
	isDesc         bool
	isRmBorrowSucc bool
}

type rbTree[K any, V any] struct {
	*rbHeader[K, V]
}

func (tree *rbTree[K, V]) keyCompare(k1, k2 K) int64 {
	return tree.cmp(k1, k2)
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// newNode acquires a slot from the allocator and constructs the node in it.
// A failed construction gives the slot back before the error propagates.
func (tree *rbTree[K, V]) newNode(key K, val V, color RBColor, parent *rbNode[K, V]) (*rbNode[K, V], error) {
	g, err := alloc.Acquire[rbNode[K, V]](tree.alloc, 1)
	if err != nil {
		return nil, err
	}
	defer g.Release()
	if err = g.Emplace(rbNode[K, V]{
		key:    key,
		val:    val,
		color:  color,
		parent: parent,
		hasKV:  true,
	}); err != nil {
		return nil, err
	}
	return &g.Commit()[0], nil
}

func (tree *rbTree[K, V]) freeNode(node *rbNode[K, V]) {
	tree.alloc.Destroy(node)
	tree.alloc.Deallocate(unsafe.Slice(node, 1))
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. (Optional) The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.
// So the shortest path nodes are black nodes. Otherwise,
// the path must contain red node.
// The longest path nodes' number is 2 * shortest path nodes' number.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil || x.right.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil || x.left.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
}

func (tree *rbTree[K, V]) search(key K) *rbNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

// i1: Empty rbtree, insert directly, but root node is painted to black.
func (tree *rbTree[K, V]) Insert(key K, val V, ifNotPresent ...bool) (Iterator[K, V], bool, error) {
	if /* i1 */ tree.root.isNilLeaf() {
		z, err := tree.newNode(key, val, Black, nil)
		if err != nil {
			return tree.End(), false, err
		}
		tree.root, tree.leftmost, tree.rightmost = z, z, z
		atomic.AddInt64(&tree.count, 1)
		return Iterator[K, V]{node: z, hdr: tree.rbHeader}, true, nil
	}

	var x, y *rbNode[K, V] = tree.root, nil
	res := int64(0)
	for !x.isNilLeaf() {
		y = x
		res = tree.keyCompare(key, x.key)
		if /* equal */ res == 0 {
			break
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	if y.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] insert a new value into nil node")
	}

	if /* equal */ res == 0 {
		if /* disabled */ len(ifNotPresent) <= 0 || !ifNotPresent[0] {
			y.val = val
		}
		return Iterator[K, V]{node: y, hdr: tree.rbHeader}, false, nil
	}

	z, err := tree.newNode(key, val, Red, y)
	if err != nil {
		return tree.End(), false, err
	}
	if /* less */ res < 0 {
		y.left = z
		if y == tree.leftmost {
			tree.leftmost = z
		}
	} else /* greater */ {
		y.right = z
		if y == tree.rightmost {
			tree.rightmost = z
		}
	}

	atomic.AddInt64(&tree.count, 1)
	tree.insertRebalance(z)
	return Iterator[K, V]{node: z, hdr: tree.rbHeader}, true, nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, nothing to do.

im2: Current node X is the root, repaint it into black.

im3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Handle im4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[K, V]) {
	defer func() {
		tree.root.color = Black
	}()

	for !x.isNilLeaf() {
		if /* im2 */ x.isRoot() {
			return
		}
		if /* im1 */ x.parent.isBlack() {
			return
		}
		// A red parent is never the root, so the grandpa exists.

		if /* im3 */ x.uncle().isRed() {
			x.parent.color = Black
			x.uncle().color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		}

		dir := x.Direction()
		if /* im4 */ dir != x.parent.Direction() {
			p := x.parent
			switch dir {
			case Left:
				tree.rightRotate(p)
			case Right:
				tree.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert violate (im4)")
			}
			x = p // enter im5 to fix
		}

		switch /* im5 */ dir = x.parent.Direction(); dir {
		case Left:
			tree.rightRotate(x.grandpa())
		case Right:
			tree.leftRotate(x.grandpa())
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert violate (im5)")
		}

		x.parent.color = Black
		x.sibling().color = Red
		return
	}
}

/*
swapPosition exchanges the tree positions and colors of x and y, where y is
x's pred or succ (a descendant of x). Keys and values stay inside their own
nodes, so iterators to both remain valid.

Find succ:

	  |                    |
	  X                    S
	 / \                  / \
	L  ..   swap(X, S)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                X  ..
*/
func (tree *rbTree[K, V]) swapPosition(x, y *rbNode[K, V]) {
	xp, xl, xr, xdir := x.parent, x.left, x.right, x.Direction()
	yp, yl, yr, ydir := y.parent, y.left, y.right, y.Direction()
	x.color, y.color = y.color, x.color

	if yp == x {
		if ydir == Left {
			y.left, y.right = x, xr
		} else {
			y.left, y.right = xl, x
		}
	} else {
		y.left, y.right = xl, xr
		switch ydir {
		case Left:
			yp.left = x
		case Right:
			yp.right = x
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] swap with root descendant")
		}
		x.parent = yp
	}
	x.left, x.right = yl, yr

	switch xdir {
	case Root:
		tree.root = y
	case Left:
		xp.left = y
	case Right:
		xp.right = y
	default:
	}
	y.parent = xp
	y.fixLink()
	x.fixLink()
}

/*
r1: Only a root node, remove directly.

r2: Current node X has left and right node.
Find node X's pred or succ and swap their positions (see swapPosition).
After the swap X has at most one child, enter r3-r4.

r3: (1) Current node X is a red leaf node, remove directly.

r3: (2) Current node X is a black leaf node, we have to rebalance before
unlinking it. (black-violation)

r4: Current node X is not a leaf node but contains a not nil child node.
The child node must be a red node. (See conclusion. Otherwise, black-violation)

removeNode unlinks z and leaves its memory to the caller.
*/
func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) {
	if z == tree.leftmost {
		tree.leftmost = z.succ()
	}
	if z == tree.rightmost {
		tree.rightmost = z.pred()
	}

	if /* r1 */ atomic.LoadInt64(&tree.count) == 1 && z.isRoot() {
		tree.root = nil
		tree.leftmost, tree.rightmost = nil, nil
		z.left, z.right = nil, nil
		return
	}

	if /* r2 */ !z.left.isNilLeaf() && !z.right.isNilLeaf() {
		if tree.isRmBorrowSucc {
			tree.swapPosition(z, z.succ()) // enter r3-r4
		} else {
			tree.swapPosition(z, z.pred()) // enter r3-r4
		}
	}

	if /* r3 */ z.isLeaf() {
		if /* r3 (2) */ z.isBlack() {
			tree.removeRebalance(z)
		}
	} else /* r4 */ {
		var replace *rbNode[K, V]
		if !z.right.isNilLeaf() {
			replace = z.right
		} else if !z.left.isNilLeaf() {
			replace = z.left
		}

		if replace == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove a leaf node without child, violate (r4)")
		}

		switch dir := z.Direction(); dir {
		case Root:
			tree.root = replace
			tree.root.parent = nil
		case Left:
			z.parent.left = replace
			replace.parent = z.parent
		case Right:
			z.parent.right = replace
			replace.parent = z.parent
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (r4)")
		}
		z.parent = nil

		if z.isBlack() {
			if replace.isRed() {
				replace.color = Black
			} else {
				tree.removeRebalance(replace)
			}
		}
	}

	// Unlink node
	if !z.isRoot() && z == z.parent.left {
		z.parent.left = nil
	} else if !z.isRoot() && z == z.parent.right {
		z.parent.right = nil
	}
	z.parent = nil
	z.left = nil
	z.right = nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) X is left node of P, left rotate P
(2) X is right node of P, right rotate P.
(3) repaint S into black, P into red.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [D]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: Current node X's parent P is red, the sibling S, nephew node Sc and Sd
is black.
Repaint S into red and P into black.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: All of current node X's parent P, the sibling S, nephew node Sc and Sd
are black.
Unable to satisfy p3 and p4. We have to paint the S into red to satisfy
p4 locally. Then recursive to handle P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: Current node X's sibling S is black, nephew node Sc is red.
Ignore X's parent P's color (red or black is okay)
Unable to satisfy p3 and p4.
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: Current node X's sibling S is black, nephew node Sd is red.
Ignore X's parent P's color (red or black is okay)
Unable to satisfy p4 (black-violation)
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) Swap P and S's color (red-violation)
(4) Repaint Sd into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K, V]) removeRebalance(x *rbNode[K, V]) {
	for {
		if x.isRoot() {
			return
		}

		sibling := x.sibling()
		dir := x.Direction()
		if /* rm1 */ sibling.isRed() {
			switch dir {
			case Left:
				tree.leftRotate(x.parent)
			case Right:
				tree.rightRotate(x.parent)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm1)")
			}
			sibling.color = Black
			x.parent.color = Red // ready to enter rm2
			sibling = x.sibling()
		}

		var sc, sd *rbNode[K, V]
		switch dir {
		case Left:
			sc, sd = sibling.left, sibling.right
		case Right:
			sc, sd = sibling.right, sibling.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm2)")
		}

		if sc.isBlack() && sd.isBlack() {
			if /* rm2 */ x.parent.isRed() {
				sibling.color = Red
				x.parent.color = Black
				return
			}
			/* rm3 */
			sibling.color = Red
			x = x.parent
			continue
		}

		if /* rm4 */ sc.isRed() {
			switch dir {
			case Left:
				tree.rightRotate(sibling)
			case Right:
				tree.leftRotate(sibling)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm4)")
			}
			sc.color = Black
			sibling.color = Red
			sibling = x.sibling()
			if dir == Left {
				sd = sibling.right
			} else {
				sd = sibling.left
			}
		}

		switch /* rm5 */ dir {
		case Left:
			tree.leftRotate(x.parent)
		case Right:
			tree.rightRotate(x.parent)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm5)")
		}
		sibling.color = x.parent.color
		x.parent.color = Black
		if !sd.isNilLeaf() {
			sd.color = Black
		}
		return
	}
}

// detach copies the entry out before its node goes back to the allocator.
func detach[K any, V any](z *rbNode[K, V]) *rbNode[K, V] {
	return &rbNode[K, V]{
		key:   z.key,
		val:   z.val,
		color: z.color,
	}
}

func (tree *rbTree[K, V]) eraseNode(z *rbNode[K, V]) {
	tree.removeNode(z)
	atomic.AddInt64(&tree.count, -1)
	tree.freeNode(z)
}

func (tree *rbTree[K, V]) Remove(key K) (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, ErrRBTreeEmpty
	}
	z := tree.search(key)
	if z == nil {
		return nil, ErrRBTreeKeyNotFound
	}
	res := detach(z)
	tree.eraseNode(z)
	return res, nil
}

func (tree *rbTree[K, V]) RemoveMin() (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 || tree.leftmost == nil {
		return nil, ErrRBTreeEmpty
	}
	z := tree.leftmost
	res := detach(z)
	tree.eraseNode(z)
	return res, nil
}

// Erase computes the successor before unlinking, the successor node itself
// is never moved so the returned iterator is valid.
func (tree *rbTree[K, V]) Erase(it Iterator[K, V]) (Iterator[K, V], error) {
	if it.hdr != tree.rbHeader || it.node == nil {
		return tree.End(), ErrRBTreeInvalidIterator
	}
	next := it.node.succ()
	tree.eraseNode(it.node)
	return Iterator[K, V]{node: next, hdr: tree.rbHeader}, nil
}

func (tree *rbTree[K, V]) Find(key K) Iterator[K, V] {
	return Iterator[K, V]{node: tree.search(key), hdr: tree.rbHeader}
}

// LowerBound returns the first node whose key is not less than key.
func (tree *rbTree[K, V]) LowerBound(key K) Iterator[K, V] {
	var res *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		if tree.keyCompare(aux.key, key) < 0 {
			aux = aux.right
		} else {
			res = aux
			aux = aux.left
		}
	}
	return Iterator[K, V]{node: res, hdr: tree.rbHeader}
}

// UpperBound returns the first node whose key is greater than key.
func (tree *rbTree[K, V]) UpperBound(key K) Iterator[K, V] {
	var res *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		if tree.keyCompare(key, aux.key) < 0 {
			res = aux
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return Iterator[K, V]{node: res, hdr: tree.rbHeader}
}

func (tree *rbTree[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{node: tree.leftmost, hdr: tree.rbHeader}
}

func (tree *rbTree[K, V]) Last() Iterator[K, V] {
	return Iterator[K, V]{node: tree.rightmost, hdr: tree.rbHeader}
}

func (tree *rbTree[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{hdr: tree.rbHeader}
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

// ReverseForeach walks from the maximum down. idx counts visited nodes.
func (tree *rbTree[K, V]) ReverseForeach(action func(idx int64, color RBColor, key K, val V) bool) {
	idx := int64(0)
	for aux := tree.rightmost; aux != nil; aux = aux.pred() {
		if !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
	}
}

// cloneSubtree copies src node by node, colors included. On failure the
// partial copy is freed and nothing is attached to parent.
func (tree *rbTree[K, V]) cloneSubtree(src, parent *rbNode[K, V]) (*rbNode[K, V], error) {
	if src == nil {
		return nil, nil
	}
	n, err := tree.newNode(src.key, src.val, src.color, parent)
	if err != nil {
		return nil, err
	}
	if n.left, err = tree.cloneSubtree(src.left, n); err != nil {
		tree.freeSubtree(n)
		return nil, err
	}
	if n.right, err = tree.cloneSubtree(src.right, n); err != nil {
		tree.freeSubtree(n)
		return nil, err
	}
	return n, nil
}

// freeSubtree releases every node under x with an explicit worklist, deep
// trees never recurse.
func (tree *rbTree[K, V]) freeSubtree(x *rbNode[K, V]) int64 {
	if x == nil {
		return 0
	}
	freed := int64(0)
	stack := []*rbNode[K, V]{x}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		tree.freeNode(aux)
		freed++
	}
	return freed
}

// Clone deep-copies the tree with the same comparator, allocator and
// removal strategy.
func (tree *rbTree[K, V]) Clone() (RBTree[K, V], error) {
	dst := &rbTree[K, V]{rbHeader: tree.emptyHeader()}
	root, err := dst.cloneSubtree(tree.root, nil)
	if err != nil {
		return nil, err
	}
	dst.root = root
	dst.leftmost, dst.rightmost = root.minimum(), root.maximum()
	dst.count = atomic.LoadInt64(&tree.count)
	return dst, nil
}

func (tree *rbTree[K, V]) asTree(other RBTree[K, V]) *rbTree[K, V] {
	o, ok := other.(*rbTree[K, V])
	if !ok || o == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] foreign tree implementation")
	}
	return o
}

// MoveFrom takes over other's nodes and leaves other empty. Self-move is a
// no-op.
func (tree *rbTree[K, V]) MoveFrom(other RBTree[K, V]) {
	o := tree.asTree(other)
	if o == tree {
		return
	}
	tree.Release()
	tree.rbHeader, o.rbHeader = o.rbHeader, o.emptyHeader()
}

func (tree *rbTree[K, V]) Swap(other RBTree[K, V]) {
	o := tree.asTree(other)
	if o == tree {
		return
	}
	tree.rbHeader, o.rbHeader = o.rbHeader, tree.rbHeader
}

// emptyHeader keeps the ordering, allocator and removal strategy of tree.
func (tree *rbTree[K, V]) emptyHeader() *rbHeader[K, V] {
	return &rbHeader[K, V]{
		cmp:            tree.cmp,
		alloc:          tree.alloc,
		isDesc:         tree.isDesc,
		isRmBorrowSucc: tree.isRmBorrowSucc,
	}
}

// Release frees all nodes iteratively.
func (tree *rbTree[K, V]) Release() {
	aux := tree.root
	tree.root, tree.leftmost, tree.rightmost = nil, nil, nil
	freed := tree.freeSubtree(aux)
	atomic.AddInt64(&tree.count, -freed)
}

type RBTreeOpt[K any, V any] func(*rbTree[K, V])

// WithRBTreeDesc reverses whatever comparator the tree ends up with.
func WithRBTreeDesc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

func WithRBTreeRemoveBorrowSucc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowSucc = true
	}
}

func WithRBTreeComparator[K any, V any](cmp infra.Comparator[K]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if cmp != nil {
			tree.cmp = cmp
		}
	}
}

// WithRBTreeAllocator routes every node through a.
func WithRBTreeAllocator[K any, V any](a RBNodeAllocator[K, V]) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if a != nil {
			tree.alloc = a
		}
	}
}

// NewRBTree orders keys naturally, ascending unless WithRBTreeDesc is given.
func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return newRBTree[K, V](infra.OrderedKeyCmp[K](), opts...)
}

// NewRBTreeFunc orders keys by cmp.
func NewRBTreeFunc[K any, V any](cmp infra.Comparator[K], opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return newRBTree[K, V](cmp, opts...)
}

func newRBTree[K any, V any](cmp infra.Comparator[K], opts ...RBTreeOpt[K, V]) *rbTree[K, V] {
	tree := &rbTree[K, V]{
		rbHeader: &rbHeader[K, V]{
			count:          0,
			cmp:            cmp,
			isDesc:         false,
			isRmBorrowSucc: false,
		},
	}

	for _, o := range opts {
		if o != nil {
			o(tree)
		}
	}
	if tree.cmp == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil comparator")
	}
	if tree.isDesc {
		tree.cmp = tree.cmp.Reverse()
	}
	if tree.alloc == nil {
		tree.alloc = alloc.HeapAllocator[rbNode[K, V]]{}
	}
	return tree
}
