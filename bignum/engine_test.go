package bignum

import (
	"math/big"
	"math/rand"
	"testing"
)

func TestFromBigIntRoundTrip(t *testing.T) {
	e := NewEngine()
	vals := []int64{0, 1, -1, 12345, -999999, 1 << 40}
	for _, v := range vals {
		c := e.FromBigInt(big.NewInt(v), 8)
		got := c.BigInt(e.WordBits)
		if got.Cmp(big.NewInt(v)) != 0 {
			t.Errorf("FromBigInt(%d) round-trip = %s, want %d", v, got, v)
		}
	}
}

func TestFromBigIntRandom(t *testing.T) {
	e := NewEngine()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		bits := 1 + rng.Intn(200)
		v := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
		numWords := (bits/int(e.WordBits) + 2 + 7) / 8 * 8
		c := e.FromBigInt(v, numWords)
		got := c.BigInt(e.WordBits)
		if got.Cmp(v) != 0 {
			t.Fatalf("round-trip mismatch: got %s want %s", got, v)
		}
	}
}

func TestLineAliasesDigits(t *testing.T) {
	e := NewEngine()
	c := e.Zero(16)
	line := c.Line(1)
	if len(line) != 8 {
		t.Fatalf("Line width = %d, want 8", len(line))
	}
	line[0] = 42
	if c.digits[8] != 42 {
		t.Errorf("Line does not alias backing digits: digits[8] = %v, want 42", c.digits[8])
	}
}

func TestMultiplyMatchesBigInt(t *testing.T) {
	e := NewEngine()
	a := big.NewInt(123456789)
	b := big.NewInt(987654321)
	ca := e.FromBigInt(a, 8)
	cb := e.FromBigInt(b, 8)
	want := new(big.Int).Mul(a, b)
	got := e.Multiply(ca, cb, e.WordBits, 16)
	if got.BigInt(e.WordBits).Cmp(want) != 0 {
		t.Errorf("Multiply = %s, want %s", got.BigInt(e.WordBits), want)
	}
}

func TestAddInto(t *testing.T) {
	e := NewEngine()
	a := e.FromInt64(5, 8)
	b := e.FromInt64(7, 8)
	e.AddInto(a, b)
	if got := a.BigInt(e.WordBits).Int64(); got != 12 {
		t.Errorf("AddInto result = %d, want 12", got)
	}
}
