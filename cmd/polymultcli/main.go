// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command polymultcli is a small demonstration front-end over the
// polymult module: it parses two literal integer coefficient vectors,
// multiplies them through the CORE and prints the Plan the Planner
// chose along with the resulting coefficients.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwilder/polymult/bignum"
	"github.com/cwilder/polymult/polymult"
)

var (
	numThreads int
	cacheSize  int
	karatBreak int
	fftBreak   int
	wordBits   uint
	outSize    int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "polymultcli",
		Short: "Multiply two comma-separated integer coefficient vectors with polymult",
	}
	root.PersistentFlags().IntVar(&numThreads, "threads", 0, "helper pool size (0 = runtime.NumCPU)")
	root.PersistentFlags().IntVar(&cacheSize, "cache-bytes", 256*1024, "target cache footprint per dispatch")
	root.PersistentFlags().IntVar(&karatBreak, "karat-break", polymult.DefaultKaratBreak, "Karatsuba breakpoint")
	root.PersistentFlags().IntVar(&fftBreak, "fft-break", polymult.DefaultFFTBreak, "poly-FFT breakpoint")
	root.PersistentFlags().UintVar(&wordBits, "word-bits", bignum.DefaultWordBits, "digit width in bits")
	root.AddCommand(newMulCmd())
	return root
}

func newMulCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mul <a0,a1,...> <b0,b1,...>",
		Short: "Multiply two coefficient vectors, lowest degree first",
		Args:  cobra.ExactArgs(2),
		RunE:  runMul,
	}
	cmd.Flags().IntVar(&outSize, "out-size", 0, "output length (0 = full product)")
	return cmd
}

func parseVector(s string) ([]int64, error) {
	fields := strings.Split(s, ",")
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing coefficient %q: %w", f, err)
		}
		out[i] = v
	}
	return out, nil
}

func runMul(cmd *cobra.Command, args []string) error {
	a, err := parseVector(args[0])
	if err != nil {
		return err
	}
	b, err := parseVector(args[1])
	if err != nil {
		return err
	}

	engine := &bignum.Engine{WordBits: wordBits}
	h := polymult.Init(engine)
	defer h.Done()
	h.SetBreakpoints(karatBreak, fftBreak)
	h.SetCacheSize(cacheSize)
	if numThreads > 0 {
		h.SetMaxNumThreads(numThreads)
	}

	numWords := 8
	for {
		margin := polymult.SafetyMargin(len(a), len(b), wordBits)
		if numWords*int(wordBits) >= margin+64 {
			break
		}
		numWords += 8
	}

	in1 := toPolynomial(engine, a, numWords)
	in2 := toPolynomial(engine, b, numWords)

	n := outSize
	if n == 0 {
		n = len(a) + len(b) - 1
	}
	out := polymult.Polynomial{Coeffs: make([]*bignum.Coefficient, n)}
	for i := range out.Coeffs {
		out.Coeffs[i] = engine.Zero(numWords)
	}

	if err := polymult.Polymult(h, in1, in2, out, n, polymult.Options{}); err != nil {
		return err
	}
	plan, err := polymult.BuildPlan(h, in1, in2, n, polymult.Options{}, false)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "algorithm: %s\n", plan.Algorithm)
	fmt.Fprintf(cmd.OutOrStdout(), "fft size hint: %d\n", polymult.FFTSize(len(a)+len(b)-1))
	fmt.Fprintf(cmd.OutOrStdout(), "twiddle cache entries: %d\n", h.TwiddleCacheLen())
	for i, c := range out.Coeffs {
		fmt.Fprintf(cmd.OutOrStdout(), "coeff[%d] = %s\n", i, c.BigInt(wordBits).String())
	}
	return nil
}

func toPolynomial(e *bignum.Engine, vals []int64, numWords int) polymult.Polynomial {
	p := polymult.Polynomial{Coeffs: make([]*bignum.Coefficient, len(vals))}
	for i, v := range vals {
		p.Coeffs[i] = e.FromInt64(v, numWords)
	}
	return p
}
