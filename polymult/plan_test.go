package polymult

import (
	"testing"

	"github.com/cwilder/polymult/bignum"
)

func testHandle() *Handle {
	h := NewHandle(bignum.NewEngine())
	h.SetBreakpoints(4, 16)
	return h
}

func polyOfLen(e *bignum.Engine, n, numWords int) Polynomial {
	p := Polynomial{Coeffs: make([]*bignum.Coefficient, n)}
	for i := range p.Coeffs {
		p.Coeffs[i] = e.Zero(numWords)
	}
	return p
}

func TestBuildPlanChoosesAlgorithmByBreakpoint(t *testing.T) {
	h := testHandle()
	e := h.Engine

	small1 := polyOfLen(e, 2, 8)
	small2 := polyOfLen(e, 2, 8)
	plan, err := BuildPlan(h, small1, small2, 0, Options{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Algorithm != AlgoBrute {
		t.Errorf("small operands chose %v, want brute", plan.Algorithm)
	}

	mid1 := polyOfLen(e, 6, 8)
	mid2 := polyOfLen(e, 6, 8)
	plan, err = BuildPlan(h, mid1, mid2, 0, Options{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Algorithm != AlgoKaratsuba {
		t.Errorf("mid operands chose %v, want karatsuba", plan.Algorithm)
	}

	big1 := polyOfLen(e, 20, 8)
	big2 := polyOfLen(e, 20, 8)
	plan, err = BuildPlan(h, big1, big2, 0, Options{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Algorithm != AlgoFFT {
		t.Errorf("large operands chose %v, want fft", plan.Algorithm)
	}
}

func TestBuildPlanTailHiShift(t *testing.T) {
	h := testHandle()
	e := h.Engine
	in1 := polyOfLen(e, 3, 8)
	in2 := polyOfLen(e, 3, 8)
	plan, err := BuildPlan(h, in1, in2, 2, Options{Tail: TailHi}, false)
	if err != nil {
		t.Fatal(err)
	}
	if plan.ConvLen != 5 {
		t.Fatalf("ConvLen = %d, want 5", plan.ConvLen)
	}
	if plan.Shift != 3 || plan.OutSize != 2 {
		t.Fatalf("Shift=%d OutSize=%d, want Shift=3 OutSize=2", plan.Shift, plan.OutSize)
	}
}

func TestBuildPlanMonicAddsOneCoefficient(t *testing.T) {
	h := testHandle()
	e := h.Engine
	in1 := polyOfLen(e, 3, 8)
	in2 := polyOfLen(e, 3, 8)
	plan, err := BuildPlan(h, in1, in2, 0, Options{Invec1: VectorOptions{Monic: true}}, false)
	if err != nil {
		t.Fatal(err)
	}
	if plan.N1 != 4 {
		t.Fatalf("N1 = %d, want 4", plan.N1)
	}
}

func TestBuildPlanRejectsMulMidOutsideSeveral(t *testing.T) {
	h := testHandle()
	e := h.Engine
	in1 := polyOfLen(e, 3, 8)
	in2 := polyOfLen(e, 3, 8)
	_, err := BuildPlan(h, in1, in2, 2, Options{Tail: TailMid, FirstMulMid: 1}, false)
	if err == nil {
		t.Fatal("expected a configuration error for MULMID outside PolymultSeveral")
	}
}
