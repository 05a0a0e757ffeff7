package polymult

import "testing"

func TestLineArithmetic(t *testing.T) {
	a := Line{1, 2, 3, 4, 5, 6, 7, 8}
	b := Line{8, 7, 6, 5, 4, 3, 2, 1}

	sum := a.Add(b)
	for i := range sum {
		if sum[i] != 9 {
			t.Fatalf("Add lane %d = %v, want 9", i, sum[i])
		}
	}

	diff := a.Sub(b)
	want := Line{-7, -5, -3, -1, 1, 3, 5, 7}
	if diff != want {
		t.Fatalf("Sub = %v, want %v", diff, want)
	}

	ma := a.MulAdd(b, b)
	for i := range ma {
		if ma[i] != a[i]+b[i]*b[i] {
			t.Fatalf("MulAdd lane %d = %v, want %v", i, ma[i], a[i]+b[i]*b[i])
		}
	}
}

func TestComplexLineMulScalarIdentity(t *testing.T) {
	a := ComplexLine{Re: Line{1, 2, 3, 4, 5, 6, 7, 8}, Im: Line{0, 0, 0, 0, 0, 0, 0, 0}}
	r := a.MulScalar(1, 0)
	if r.Re != a.Re || r.Im != a.Im {
		t.Fatalf("MulScalar(1,0) changed value: got %+v, want %+v", r, a)
	}
}

func TestComplexLineMulLineRealOnly(t *testing.T) {
	a := ComplexLine{Re: Line{2, 2, 2, 2, 2, 2, 2, 2}}
	b := ComplexLine{Re: Line{3, 3, 3, 3, 3, 3, 3, 3}}
	r := a.MulLine(b)
	for i := range r.Re {
		if r.Re[i] != 6 || r.Im[i] != 0 {
			t.Fatalf("MulLine lane %d = (%v,%v), want (6,0)", i, r.Re[i], r.Im[i])
		}
	}
}
