package polymult

import "testing"

func TestBruteConvolveLineMatchesHandCompute(t *testing.T) {
	in1 := []Line{{1}, {2}, {3}}
	in2 := []Line{{1}, {1}}
	// (1 + 2x + 3x^2)(1 + x) = 1 + 3x + 5x^2 + 3x^3
	want := []float64{1, 3, 5, 3}

	out := bruteConvolveLine(in1, in2, 4)
	for i, w := range want {
		if out[i][0] != w {
			t.Errorf("coeff %d = %v, want %v", i, out[i][0], w)
		}
	}
}

func TestBruteConvolveLineTruncates(t *testing.T) {
	in1 := []Line{{1}, {2}, {3}}
	in2 := []Line{{1}, {1}}
	out := bruteConvolveLine(in1, in2, 2)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0][0] != 1 || out[1][0] != 3 {
		t.Errorf("truncated output = %v, %v, want 1, 3", out[0][0], out[1][0])
	}
}

func TestBruteConvolveLineAllLanes(t *testing.T) {
	in1 := []Line{{1, 10}, {2, 20}}
	in2 := []Line{{3, 30}, {4, 40}}
	out := bruteConvolveLine(in1, in2, 3)
	// lane 0: (1+2x)(3+4x) = 3 + 10x + 8x^2
	if out[0][0] != 3 || out[1][0] != 10 || out[2][0] != 8 {
		t.Errorf("lane 0 = %v, want 3,10,8", []float64{out[0][0], out[1][0], out[2][0]})
	}
	// lane 1: (10+20x)(30+40x) = 300 + 1000x + 800x^2
	if out[0][1] != 300 || out[1][1] != 1000 || out[2][1] != 800 {
		t.Errorf("lane 1 = %v, want 300,1000,800", []float64{out[0][1], out[1][1], out[2][1]})
	}
}
