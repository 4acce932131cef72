package pucker

// Family is a conformational family of a ring.
type Family int

const (
	FamilyNone Family = iota
	FamilyPlanar
	FamilyChair
	FamilyBoat
	FamilyHalfChair
	FamilySkewBoat
	FamilyEnvelope
	FamilyTwist
	// FamilySevenMembered marks seven-membered rings, which are colored but
	// not matched against references.
	FamilySevenMembered
)

var familyNames = map[Family]string{
	FamilyNone:          "none",
	FamilyPlanar:        "planar",
	FamilyChair:         "chair",
	FamilyBoat:          "boat",
	FamilyHalfChair:     "half-chair",
	FamilySkewBoat:      "skew-boat",
	FamilyEnvelope:      "envelope",
	FamilyTwist:         "twist",
	FamilySevenMembered: "seven-membered",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "unknown"
}

// Method selects the pucker analysis that colors a ring.
type Method int

const (
	HillReilly Method = iota
	CremerPople
)

func (m Method) String() string {
	if m == CremerPople {
		return "cremer-pople"
	}
	return "hill-reilly"
}

// ParseMethod accepts "hill-reilly" or "cremer-pople".
func ParseMethod(s string) (Method, bool) {
	switch s {
	case "hill-reilly", "hillreilly", "hr":
		return HillReilly, true
	case "cremer-pople", "cremerpople", "cp":
		return CremerPople, true
	}
	return HillReilly, false
}
