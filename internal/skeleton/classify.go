package skeleton

// Kind tells endpoints and branch points apart.
type Kind int

const (
	// Endpoint is a skeleton pixel with exactly one skeleton neighbor.
	Endpoint Kind = iota + 1
	// Branch is a skeleton pixel with three or more skeleton neighbors.
	Branch
)

func (k Kind) String() string {
	switch k {
	case Endpoint:
		return "endpoint"
	case Branch:
		return "branch"
	default:
		return "unknown"
	}
}

// Marker is a classified skeleton pixel.
type Marker struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Kind Kind `json:"kind"`
}

// Classify scans the interior of the skeleton in row-major order and returns
// its endpoints and branch points in scan order.
//
// Pixels on the outermost rows and columns are skipped because they lack a
// full 3x3 neighborhood. Pixels with zero neighbors (isolated) or two
// neighbors (inside a curve) are not markers.
func Classify(skel *Mask) []Marker {
	var markers []Marker
	for y := 1; y < skel.Height-1; y++ {
		for x := 1; x < skel.Width-1; x++ {
			if !skel.Pix[y*skel.Width+x] {
				continue
			}
			switch n := skel.NeighborCount(x, y); {
			case n == 1:
				markers = append(markers, Marker{X: x, Y: y, Kind: Endpoint})
			case n > 2:
				markers = append(markers, Marker{X: x, Y: y, Kind: Branch})
			}
		}
	}
	return markers
}

// CountKinds returns how many endpoints and branch points markers holds.
func CountKinds(markers []Marker) (endpoints, branches int) {
	for _, m := range markers {
		switch m.Kind {
		case Endpoint:
			endpoints++
		case Branch:
			branches++
		}
	}
	return endpoints, branches
}
