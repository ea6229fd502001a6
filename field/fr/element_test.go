package fr

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

func TestFrRingLaws(t *testing.T) {
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

func TestFrTwoInv(t *testing.T) {
	two := NewElement(2)
	inv := TwoInv()
	var prod Element
	prod.Mul(&two, &inv)
	require.True(t, prod.IsOne())
}

func TestFrBatchInvert(t *testing.T) {
	xs := []Element{NewElement(5), {}, NewElement(7)}
	out := BatchInvert(xs)
	require.True(t, out[1].IsZero())
	var prod Element
	prod.Mul(&xs[0], &out[0])
	require.True(t, prod.IsOne())
}
