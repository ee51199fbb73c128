package integrators

// DefaultSubsteps is the number of fixed sub-steps per time step.
const DefaultSubsteps = 10

// AccelFunc returns the angular acceleration at normalised sub-step
// parameter t in [0, 1).
type AccelFunc func(t float64) (float64, error)

// SubstepEuler advances angular state across one time step with a fixed
// number of semi-implicit Euler sub-steps: the velocity is updated first
// and the new velocity moves the angle.
type SubstepEuler struct {
	Substeps int
}

func NewSubstepEuler(substeps int) *SubstepEuler {
	if substeps < 1 {
		substeps = DefaultSubsteps
	}
	return &SubstepEuler{Substeps: substeps}
}

// Step integrates (theta, omega) over dt. The returned angle is not
// normalised. On error the inputs are returned unchanged.
func (e *SubstepEuler) Step(theta, omega, dt float64, accel AccelFunc) (float64, float64, error) {
	n := e.Substeps
	h := dt / float64(n)

	th, om := theta, omega
	for k := 0; k < n; k++ {
		t := float64(k) / float64(n)
		alpha, err := accel(t)
		if err != nil {
			return theta, omega, err
		}
		om += alpha * h
		th += om * h
	}
	return th, om, nil
}
