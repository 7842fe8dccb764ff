package predict

// Model is the capability a trained network must expose: map a
// conditioned flux vector of the agreed length to effective temperature
// (K), surface gravity (dex), and metallicity [M/H] (dex). Architecture
// and serialization are out of scope.
type Model interface {
	Predict(flux []float64) (teff, logg, mh float64, err error)
}

// ModelFunc adapts a plain function to the [Model] interface.
type ModelFunc func(flux []float64) (teff, logg, mh float64, err error)

// Predict calls f.
func (f ModelFunc) Predict(flux []float64) (teff, logg, mh float64, err error) {
	return f(flux)
}
