package field

import "math"

// Closed-form surfaces and time components used by the dashboards.

// Holographic layers three radially damped interference terms.
func Holographic(x, y float64) float64 {
	r2 := x*x + y*y
	return math.Sin(2*x)*math.Cos(2*y)*math.Exp(-r2/8) +
		0.5*math.Sin(x*y)*math.Exp(-r2/12) +
		0.3*math.Cos(3*math.Sqrt(r2))*math.Exp(-r2/10)
}

// Superposition is |psi|^2 of three offset Gaussian wave packets.
func Superposition(x, y float64) float64 {
	z1 := math.Exp(-(x*x+y*y)/4) * math.Cos(2*x) * math.Cos(2*y)
	z2 := math.Exp(-((x-1)*(x-1)+(y-1)*(y-1))/3) * math.Sin(3*x) * math.Cos(3*y)
	z3 := math.Exp(-((x+1)*(x+1)+(y+1)*(y+1))/3) * math.Cos(3*x) * math.Sin(3*y)
	z := z1 + z2 + z3
	return z * z
}

// Landscape sums three Gaussian bumps and a damped ripple.
func Landscape(x, y float64) float64 {
	return 0.3*math.Exp(-((x-1)*(x-1)+(y-0.5)*(y-0.5))/0.5) +
		0.25*math.Exp(-((x+1)*(x+1)+(y+1)*(y+1))/0.7) +
		0.2*math.Exp(-((x-0.5)*(x-0.5)+(y+1.5)*(y+1.5))/0.4) +
		0.15*math.Sin(2*x)*math.Cos(2*y)*math.Exp(-(x*x+y*y)/4)
}

// ProbabilitySurface maps dimension d and complexity p to a probability.
func ProbabilitySurface(d, p float64) float64 {
	return 0.1 +
		0.3*math.Sin(0.5*d)*math.Cos(3*p) +
		0.2*math.Exp(-(d-4)*(d-4)/8) +
		0.15*p*p*math.Sin(0.8*d)
}

// Sensitivity is a bilinear response of two parameters.
func Sensitivity(p1, p2 float64) float64 {
	return 0.2 + 0.3*p1 + 0.2*p2 + 0.3*p1*p2
}

// RippleSurface is sin(x)cos(y) under a Gaussian envelope.
func RippleSurface(x, y float64) float64 {
	return math.Sin(x) * math.Cos(y) * math.Exp(-(x*x+y*y)/2)
}

// QuantumField is a radially damped standing wave with fine modulation.
func QuantumField(x, y, z float64) float64 {
	r := math.Sqrt(x*x + y*y + z*z)
	return math.Sin(3*r) * math.Exp(-r/2) * math.Cos(x*y*z) *
		(1 + 0.1*math.Sin(5*x)*math.Sin(5*y)*math.Sin(5*z))
}

// Sine returns amp*sin(freq*t + phase).
func Sine(amp, freq, phase float64) Component {
	return func(t float64) float64 { return amp * math.Sin(freq*t+phase) }
}

// Cosine returns amp*cos(freq*t + phase).
func Cosine(amp, freq, phase float64) Component {
	return func(t float64) float64 { return amp * math.Cos(freq*t+phase) }
}

// DampedSine returns amp*sin(freq*t)*exp(-t/tau).
func DampedSine(amp, freq, tau float64) Component {
	return func(t float64) float64 { return amp * math.Sin(freq*t) * math.Exp(-t/tau) }
}

// Constant returns c for every t.
func Constant(c float64) Component {
	return func(float64) float64 { return c }
}
