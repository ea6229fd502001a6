package fr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLambdaIsCubeRootOfUnity(t *testing.T) {
	l := NewElement(0)
	l.setBig(Lambda)
	var lsq, sum Element
	lsq.Square(&l)
	sum.Add(&lsq, &l)
	one := NewElement(1)
	sum.Add(&sum, &one)
	require.True(t, sum.IsZero(), "lambda^2+lambda+1 should be 0 mod q")

	var lcube Element
	lcube.Mul(&lsq, &l)
	require.True(t, lcube.IsOne(), "lambda^3 should be 1 mod q")
}

func TestSplitScalarReconstructs(t *testing.T) {
	seeds := []uint64{1, 2, 3, 12345, 0xdeadbeefcafebabe}
	for _, s := range seeds {
		var k Element
		var b big.Int
		b.SetUint64(s)
		b.Mul(&b, &b)
		b.Mul(&b, &b)
		b.Mul(&b, &b)
		k.setBig(&b)

		k1, k2 := SplitScalar(&k)

		var lam, rhs Element
		lam.setBig(Lambda)
		rhs.Mul(&k2, &lam)
		rhs.Sub(&k1, &rhs)
		require.True(t, rhs.Equal(&k), "k1 - k2*lambda should equal k mod q")

		half := new(big.Int).Lsh(big.NewInt(1), 129)
		require.True(t, k1.bigint().Cmp(half) < 0 || new(big.Int).Sub(Modulus, k1.bigint()).Cmp(half) < 0)
		require.True(t, k2.bigint().Cmp(half) < 0 || new(big.Int).Sub(Modulus, k2.bigint()).Cmp(half) < 0)
	}
}
