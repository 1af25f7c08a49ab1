package graph

import "errors"

// ErrMalformedGraph indicates an edge that references a node absent from the
// node set, or an edge weight outside (0,1].
var ErrMalformedGraph = errors.New("malformed graph")
