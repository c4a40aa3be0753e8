// Package stages implements the individual image transforms of the
// preprocessing pipeline. Every stage is a pure function from one mat to a
// freshly allocated mat; callers own both.
package stages

// ContrastStrength selects the contrast enhancement tier.
type ContrastStrength int

const (
	ContrastNormal ContrastStrength = iota
	ContrastStrong
)

func (s ContrastStrength) String() string {
	if s == ContrastStrong {
		return "strong"
	}
	return "normal"
}

// DenoiseMethod selects the noise reduction filter. Cascaded applies
// strictly more aggressive, multi-stage filtering for severe noise.
type DenoiseMethod int

const (
	DenoiseBilateral DenoiseMethod = iota
	DenoiseGaussian
	DenoiseMedian
	DenoiseCascaded
)

func (m DenoiseMethod) String() string {
	switch m {
	case DenoiseGaussian:
		return "gaussian"
	case DenoiseMedian:
		return "median"
	case DenoiseCascaded:
		return "cascaded"
	default:
		return "bilateral"
	}
}

// SharpenStrength selects the sharpening kernel.
type SharpenStrength int

const (
	SharpenNormal SharpenStrength = iota
	SharpenStrong
)

func (s SharpenStrength) String() string {
	if s == SharpenStrong {
		return "strong"
	}
	return "normal"
}
