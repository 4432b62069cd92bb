// Package wavelet implements multi-level 2D discrete wavelet decomposition
// and reconstruction over a small family of standard filter banks.
//
// The forward transform uses half-sample symmetric boundary extension and
// keeps floor((n+f-1)/2) coefficients per band, so reconstruction is exact up
// to floating-point error; the inverse may overshoot an odd dimension by one
// sample, which callers crop using the originally recorded shape.
package wavelet

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownWavelet is returned when a wavelet identifier is not registered.
var ErrUnknownWavelet = errors.New("unknown wavelet")

// Wavelet holds the four filters of a two-channel filter bank.
// All filters have the same length.
type Wavelet struct {
	Name  string
	DecLo []float64 // analysis low-pass
	DecHi []float64 // analysis high-pass
	RecLo []float64 // synthesis low-pass
	RecHi []float64 // synthesis high-pass
}

// FilterLen returns the common filter length.
func (w *Wavelet) FilterLen() int {
	return len(w.DecLo)
}

// MaxLevel returns the deepest decomposition supportable for a signal of the
// given shorter dimension: floor(log2(minDim / (filterLen-1))).
func MaxLevel(minDim, filterLen int) int {
	if minDim <= 0 || filterLen <= 1 {
		return 0
	}
	ratio := float64(minDim) / float64(filterLen-1)
	if ratio < 2 {
		return 0
	}
	return int(math.Log2(ratio))
}

func reversed(f []float64) []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		out[len(f)-1-i] = v
	}
	return out
}

// orthogonal derives the full filter bank from a synthesis scaling filter
// using the standard quadrature mirror relations.
func orthogonal(name string, recLo []float64) *Wavelet {
	n := len(recLo)
	recHi := make([]float64, n)
	for k := 0; k < n; k++ {
		if k%2 == 0 {
			recHi[k] = recLo[n-1-k]
		} else {
			recHi[k] = -recLo[n-1-k]
		}
	}
	return &Wavelet{
		Name:  name,
		DecLo: reversed(recLo),
		DecHi: reversed(recHi),
		RecLo: append([]float64(nil), recLo...),
		RecHi: recHi,
	}
}

// Synthesis scaling filters of the orthogonal family members.
var (
	haarRecLo = []float64{
		0.7071067811865476,
		0.7071067811865476,
	}
	db2RecLo = []float64{
		0.48296291314469025,
		0.8365163037378079,
		0.2241438680420134,
		-0.12940952255092145,
	}
	db4RecLo = []float64{
		0.23037781330885523,
		0.7148465705525415,
		0.6308807679295904,
		-0.02798376941698385,
		-0.18703481171888114,
		0.030841381835986965,
		0.032883011666982945,
		-0.010597401784997278,
	}
	coif1RecLo = []float64{
		-0.0727326195128539,
		0.33789766245780922,
		0.85257202021225542,
		0.38486484686420286,
		-0.0727326195128539,
		-0.01565572813546454,
	}
)

// bior22 is the CDF 2,2 biorthogonal pair. The filters are stored padded to a
// common even length, matching the alignment the convolution code expects.
func bior22() *Wavelet {
	return &Wavelet{
		Name: "bior2.2",
		DecLo: []float64{
			0,
			-0.17677669529663689,
			0.35355339059327379,
			1.0606601717798214,
			0.35355339059327379,
			-0.17677669529663689,
		},
		DecHi: []float64{
			0,
			0.35355339059327379,
			-0.70710678118654757,
			0.35355339059327379,
			0,
			0,
		},
		RecLo: []float64{
			0,
			0.35355339059327379,
			0.70710678118654757,
			0.35355339059327379,
			0,
			0,
		},
		RecHi: []float64{
			0,
			0.17677669529663689,
			0.35355339059327379,
			-1.0606601717798214,
			0.35355339059327379,
			0.17677669529663689,
		},
	}
}

var registry = map[string]*Wavelet{}

func register(w *Wavelet) {
	registry[w.Name] = w
}

func init() {
	register(orthogonal("haar", haarRecLo))
	register(orthogonal("db1", haarRecLo))
	register(orthogonal("db2", db2RecLo))
	register(orthogonal("db4", db4RecLo))
	register(orthogonal("sym2", db2RecLo)) // sym2 and db2 share coefficients
	register(orthogonal("coif1", coif1RecLo))
	register(bior22())
}

// Get returns the wavelet registered under name.
func Get(name string) (*Wavelet, error) {
	w, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}
	return w, nil
}

// Names returns the registered wavelet identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
