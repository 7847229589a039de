package slider

import "github.com/vsariola/slidermon"

// axisKeys is the orientation of a slider resolved once at construction:
// which coordinate of a point runs along the track and which across it.
type axisKeys struct {
	primary func(Point) float64
	cross   func(Point) float64
}

func keysFor(o slidermon.Orientation) axisKeys {
	if o == slidermon.Vertical {
		return axisKeys{
			primary: func(p Point) float64 { return p.Y },
			cross:   func(p Point) float64 { return p.X },
		}
	}
	return axisKeys{
		primary: func(p Point) float64 { return p.X },
		cross:   func(p Point) float64 { return p.Y },
	}
}

// Measure builds the Geometry of a slider from the position of the track and
// the sizes of the track and a handle, picking the coordinates that run along
// the track.
func (s *Slider) Measure(trackOrigin, trackSize, handleSize Point) Geometry {
	return Geometry{
		Start:        s.keys.primary(trackOrigin),
		AxisLength:   s.keys.primary(trackSize),
		HandleExtent: s.keys.primary(handleSize),
	}
}

// Along returns the coordinate of p that runs along the track.
func (s *Slider) Along(p Point) float64 { return s.keys.primary(p) }
