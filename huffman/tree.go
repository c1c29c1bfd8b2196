package huffman

import "container/heap"

// Node is a Huffman tree node. A leaf carries a Symbol; an internal node has
// exactly two children and a Weight equal to the sum of theirs.
type Node struct {
	Symbol byte
	Weight uint64
	Left   *Node
	Right  *Node

	// lowest symbol in the subtree, used as the tie-break key
	min byte
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// nodeHeap orders by weight, then by the lowest symbol in each subtree.
// Subtrees never share symbols, so the order is total and the resulting
// tree does not depend on the heap's handling of equal keys.
type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].min < h[j].min
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*Node))
}
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// BuildTree builds a minimum-redundancy code tree over the symbols in freqs.
// The two lightest nodes are merged first, the first extracted becoming the
// left child. A table with one symbol yields a lone leaf.
func BuildTree(freqs Frequencies) (*Node, error) {
	if len(freqs) == 0 {
		return nil, ErrEmptyInput
	}
	h := make(nodeHeap, 0, len(freqs))
	for _, b := range freqs.Symbols() {
		h = append(h, &Node{Symbol: b, Weight: freqs[b], min: b})
	}
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*Node)
		b := heap.Pop(&h).(*Node)
		merged := &Node{Weight: a.Weight + b.Weight, Left: a, Right: b, min: a.min}
		if b.min < merged.min {
			merged.min = b.min
		}
		heap.Push(&h, merged)
	}
	return heap.Pop(&h).(*Node), nil
}
