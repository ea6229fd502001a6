package bn254

// G2Gen is the standard generator of G2 (the same point used by the
// Ethereum alt_bn128 precompile and by gnark-crypto's bn254 generator
// table).
var G2Gen = computeG2Gen()

func computeG2Gen() G2Affine {
	var g G2Affine
	g.X.A0.SetString("10857046999023057135944570762232829481370756359578518086990519993285655852781")
	g.X.A1.SetString("11559732032986387107991004021392285783925812861821192530917403151452391805634")
	g.Y.A0.SetString("8495653923123431417604973247489272438418190587263600148770280649306958101930")
	g.Y.A1.SetString("4082367875863433681332203403145435568316851327593401208105741076214120093531")
	return g
}
