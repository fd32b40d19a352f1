// Package anatomy holds the static organ and symptom reference tables and the
// organ-system enumeration used to pick which model loads.
package anatomy

import "fmt"

// System identifies one organ system grouping.
type System string

// The closed set of selectable organ systems.
const (
	SystemAll         System = "all"
	SystemSkeletal    System = "skeletal"
	SystemMuscular    System = "muscular"
	SystemCirculatory System = "circulatory"
	SystemRespiratory System = "respiratory"
	SystemNervous     System = "nervous"
	SystemDigestive   System = "digestive"
	SystemUrinary     System = "urinary"
)

// Systems returns all selectable systems in display order.
func Systems() []System {
	return []System{
		SystemAll,
		SystemSkeletal,
		SystemMuscular,
		SystemCirculatory,
		SystemRespiratory,
		SystemNervous,
		SystemDigestive,
		SystemUrinary,
	}
}

// ParseSystem converts a string to a System, validating against the closed set.
func ParseSystem(s string) (System, error) {
	for _, sys := range Systems() {
		if string(sys) == s {
			return sys, nil
		}
	}
	return "", fmt.Errorf("unknown organ system %q", s)
}

// Label returns a capitalized display label for the system.
func (s System) Label() string {
	switch s {
	case SystemAll:
		return "Full Body"
	case SystemSkeletal:
		return "Skeletal"
	case SystemMuscular:
		return "Muscular"
	case SystemCirculatory:
		return "Circulatory"
	case SystemRespiratory:
		return "Respiratory"
	case SystemNervous:
		return "Nervous"
	case SystemDigestive:
		return "Digestive"
	case SystemUrinary:
		return "Urinary"
	}
	return string(s)
}
