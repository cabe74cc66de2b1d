package mesh

import "sort"

// EdgeKey canonically identifies an edge by its two endpoint handles,
// ordered so the same edge always hashes the same way regardless of the
// order callers discovered its endpoints in.
type EdgeKey [2]VertexHandle

// NewEdgeKey builds a canonical EdgeKey for the edge (a,b).
func NewEdgeKey(a, b VertexHandle) EdgeKey {
	if vertexLess(b, a) {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// FacetKey canonically identifies a facet by its three vertex handles,
// sorted into a stable order.
type FacetKey [3]VertexHandle

// NewFacetKey builds a canonical FacetKey for the facet (a,b,c).
func NewFacetKey(a, b, c VertexHandle) FacetKey {
	k := [3]VertexHandle{a, b, c}
	sort.Slice(k[:], func(i, j int) bool { return vertexLess(k[i], k[j]) })
	return FacetKey(k)
}

func vertexLess(a, b VertexHandle) bool {
	if a.idx != b.idx {
		return a.idx < b.idx
	}
	return a.gen < b.gen
}

// RejectReason explains why a mutating mesh or operator call was refused.
// Spec: "Each operator returns success or a reason code".
type RejectReason int

const (
	// RejectNone is returned alongside ok=true: nothing was rejected.
	RejectNone RejectReason = iota
	// RejectInversion means the operation would create a non-positive-volume tet.
	RejectInversion
	// RejectLinkCondition means the edge's link is not the intersection of its endpoints' links.
	RejectLinkCondition
	// RejectProtected means the operation would alter a protected element
	// (complex edge, complex facet, or corner) under protect_boundaries.
	RejectProtected
	// RejectTopology means the requested local configuration doesn't exist
	// (e.g. an edge ring that isn't exactly 3 cells for a 3-to-2 flip).
	RejectTopology
	// RejectQuality means a flip was proposed but didn't strictly improve quality.
	RejectQuality
	// RejectFeatureLoss means the operation would destroy a subdomain/feature distinction.
	RejectFeatureLoss
	// RejectStaleHandle means a handle passed to the operation no longer refers to a live element.
	RejectStaleHandle
	// RejectWouldExceedLength means the operation would produce an edge
	// longer than the current maximum allowed length.
	RejectWouldExceedLength
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectInversion:
		return "inversion"
	case RejectLinkCondition:
		return "link-condition"
	case RejectProtected:
		return "protected"
	case RejectTopology:
		return "topology"
	case RejectQuality:
		return "quality"
	case RejectFeatureLoss:
		return "feature-loss"
	case RejectStaleHandle:
		return "stale-handle"
	case RejectWouldExceedLength:
		return "would-exceed-length"
	default:
		return "unknown"
	}
}
