package costack

import(
	"fmt"
	"sort"
)

// Named mask planes. Each plane name owns one bit position in the
// mask images; a "bad pixel mask" is just the OR of a few planes'
// bits. EDGE is reserved for coverage tracking - the accumulator
// never copies it from input exposures, only the edge classifier
// sets it.
const(
	MaxMaskPlanes = 32

	PlaneBad    = "BAD"
	PlaneSat    = "SAT"
	PlaneIntrp  = "INTRP"
	PlaneCR     = "CR"
	PlaneEdge   = "EDGE"
	PlaneNoData = "NO_DATA"
)

var(
	maskPlaneBits = map[string]uint{
		PlaneBad:    0,
		PlaneSat:    1,
		PlaneIntrp:  2,
		PlaneCR:     3,
		PlaneEdge:   4,
		PlaneNoData: 5,
	}
	nextMaskPlaneBit = uint(6)
)

// AddMaskPlane registers a new named plane, and returns its bit
// value. Registering an existing name is a no-op that returns the
// existing bit.
func AddMaskPlane(name string) (uint32, error) {
	if bit,exists := maskPlaneBits[name]; exists {
		return 1<<bit, nil
	}
	if nextMaskPlaneBit >= MaxMaskPlanes {
		return 0, fmt.Errorf("mask plane '%s': all %d bits already assigned", name, MaxMaskPlanes)
	}

	maskPlaneBits[name] = nextMaskPlaneBit
	nextMaskPlaneBit++
	return 1<<maskPlaneBits[name], nil
}

// PlaneBitMask ORs together the bit values of the named planes. The
// order of the names doesn't matter.
func PlaneBitMask(names ...string) (uint32, error) {
	bitMask := uint32(0)
	for _,name := range names {
		bit,exists := maskPlaneBits[name]
		if !exists {
			return 0, fmt.Errorf("%w: '%s' (have %v)", ErrUnknownPlane, name, MaskPlaneNames())
		}
		bitMask |= 1<<bit
	}
	return bitMask, nil
}

func MaskPlaneNames() []string {
	names := []string{}
	for name := range maskPlaneBits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EdgeBitMask returns the bit reserved for coverage/edge tracking.
func EdgeBitMask() uint32 {
	bits,_ := PlaneBitMask(PlaneEdge) // always registered
	return bits
}

func NoDataBitMask() uint32 {
	bits,_ := PlaneBitMask(PlaneNoData)
	return bits
}
