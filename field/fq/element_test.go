package fq

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genElement() gopter.Gen {
	return gen.UInt64Range(0, ^uint64(0)).Map(func(seed uint64) Element {
		var e Element
		var b big.Int
		b.SetUint64(seed)
		b.Mul(&b, &b)
		b.Mul(&b, &b)
		return *e.setBig(&b)
	})
}

func TestFqRingLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("addition is associative", prop.ForAll(
		func(a, b, c Element) bool {
			var lhs, rhs Element
			lhs.Add(&a, &b)
			lhs.Add(&lhs, &c)
			rhs.Add(&b, &c)
			rhs.Add(&a, &rhs)
			return lhs.Equal(&rhs)
		}, genElement(), genElement(), genElement(),
	))

	properties.Property("multiplication is associative", prop.ForAll(
		func(a, b, c Element) bool {
			var lhs, rhs Element
			lhs.Mul(&a, &b)
			lhs.Mul(&lhs, &c)
			rhs.Mul(&b, &c)
			rhs.Mul(&a, &rhs)
			return lhs.Equal(&rhs)
		}, genElement(), genElement(), genElement(),
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c Element) bool {
			var sum, lhs, rb, rc, rhs Element
			sum.Add(&b, &c)
			lhs.Mul(&a, &sum)
			rb.Mul(&a, &b)
			rc.Mul(&a, &c)
			rhs.Add(&rb, &rc)
			return lhs.Equal(&rhs)
		}, genElement(), genElement(), genElement(),
	))

	properties.Property("inverse of nonzero x satisfies x*x^-1 = 1", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var inv, prod Element
			inv.Inverse(&a)
			prod.Mul(&a, &inv)
			return prod.IsOne()
		}, genElement(),
	))

	properties.TestingRun(t)
}

func TestFqMontgomeryRoundTrip(t *testing.T) {
	for i := uint64(0); i < 200; i++ {
		var e Element
		e.SetUint64(i * 0x9E3779B97F4A7C15)
		var m Element
		m.SetBigInt(e.bigint())
		require.True(t, m.Equal(&e))
	}
}

func TestFqSqrt(t *testing.T) {
	var x Element
	x.SetUint64(12345)
	var sq Element
	sq.Square(&x)
	root := new(Element).Sqrt(&sq)
	require.NotNil(t, root)
	var back Element
	back.Square(root)
	require.True(t, back.Equal(&sq))
}

func TestFqBatchInvertSkipsZero(t *testing.T) {
	xs := []Element{NewElement(1), {}, NewElement(3), NewElement(4)}
	out := BatchInvert(xs)
	require.True(t, out[1].IsZero())
	var prod Element
	prod.Mul(&xs[0], &out[0])
	require.True(t, prod.IsOne())
	prod.Mul(&xs[2], &out[2])
	require.True(t, prod.IsOne())
	prod.Mul(&xs[3], &out[3])
	require.True(t, prod.IsOne())
}
