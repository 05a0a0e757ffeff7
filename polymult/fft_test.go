package polymult

import (
	"math"
	"math/rand"
	"testing"
)

func TestFFTSizeIsFiveSmoothAndSufficient(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 9, 10, 17, 100, 257} {
		s := fftSize(n)
		if s < n {
			t.Fatalf("fftSize(%d) = %d, too small", n, s)
		}
		v := s
		for _, p := range []int{2, 3, 5} {
			for v%p == 0 {
				v /= p
			}
		}
		if v != 1 {
			t.Fatalf("fftSize(%d) = %d is not 5-smooth (leftover factor %d)", n, s, v)
		}
	}
}

func TestFFTInPlaceRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 15, 16, 30} {
		tbl := buildTwiddleTable(n)
		a := make([]ComplexLine, n)
		orig := make([]ComplexLine, n)
		for i := range a {
			var l Line
			for lane := range l {
				l[lane] = rng.Float64()*20 - 10
			}
			a[i] = ComplexLine{Re: l}
			orig[i] = a[i]
		}
		fftInPlace(a, 1, false, tbl)
		fftInPlace(a, 1, true, tbl)
		scale := 1.0 / float64(n)
		for i := range a {
			got := a[i].Scale(scale)
			for lane := 0; lane < 8; lane++ {
				if math.Abs(got.Re[lane]-orig[i].Re[lane]) > 1e-6 {
					t.Fatalf("n=%d index=%d lane=%d: round trip = %v, want %v", n, i, lane, got.Re[lane], orig[i].Re[lane])
				}
			}
		}
	}
}

func TestPolyFFTConvolveLineMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tc := NewTwiddleCache()
	for _, n1 := range []int{1, 2, 3, 7} {
		for _, n2 := range []int{1, 4, 5} {
			in1 := randLines(n1, rng)
			in2 := randLines(n2, rng)
			convLen := n1 + n2 - 1
			size := fftSize(convLen)
			want := bruteConvolveLine(in1, in2, convLen)
			got := polyFFTConvolveLine(in1, in2, size, tc)
			for i := 0; i < convLen; i++ {
				for lane := 0; lane < 8; lane++ {
					if math.Abs(got[i][lane]-want[i][lane]) > 1e-6 {
						t.Fatalf("n1=%d n2=%d coeff %d lane %d: got %v want %v", n1, n2, i, lane, got[i][lane], want[i][lane])
					}
				}
			}
		}
	}
}
