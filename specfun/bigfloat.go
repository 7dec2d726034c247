package specfun

import "math/big"

// Extended-precision helpers for the prolate radial series, which cancels
// catastrophically in float64 (see radial.go). Everything here operates
// at a fixed mantissa precision carried by bigCtx.

const piStr = "3.1415926535897932384626433832795028841971693993751058209749445923" +
	"078164062862089986280348253421170679821480865132823066470938446095505822317253594081284811174502841027019385211055596446229489549303820"

type bigCtx struct {
	prec uint
}

func (c bigCtx) new() *big.Float {
	return new(big.Float).SetPrec(c.prec)
}

func (c bigCtx) f(x float64) *big.Float {
	return c.new().SetFloat64(x)
}

func (c bigCtx) i(n int64) *big.Float {
	return c.new().SetInt64(n)
}

func (c bigCtx) pi() *big.Float {
	p, _, err := big.ParseFloat(piStr, 10, c.prec, big.ToNearestEven)
	if err != nil {
		panic("specfun: bad pi literal")
	}
	return p
}

func (c bigCtx) add(a, b *big.Float) *big.Float { return c.new().Add(a, b) }
func (c bigCtx) sub(a, b *big.Float) *big.Float { return c.new().Sub(a, b) }
func (c bigCtx) mul(a, b *big.Float) *big.Float { return c.new().Mul(a, b) }
func (c bigCtx) quo(a, b *big.Float) *big.Float { return c.new().Quo(a, b) }

func (c bigCtx) sqrt(a *big.Float) *big.Float {
	return c.new().Sqrt(a)
}

// sinCos evaluates sin and cos together: argument reduction mod 2*pi,
// then the interleaved Taylor series.
func (c bigCtx) sinCos(x *big.Float) (sin, cos *big.Float) {
	twoPi := c.mul(c.i(2), c.pi())
	k := c.quo(x, twoPi)
	ki, _ := k.Int(nil)
	r := c.sub(x, c.mul(c.new().SetInt(ki), twoPi))

	r2 := c.mul(r, r)
	sinT := c.new().Set(r)
	cosT := c.i(1)
	sin = c.new().Set(sinT)
	cos = c.new().Set(cosT)

	// terms below half the working precision no longer contribute
	cutoff := -int(c.prec) - 8
	for n := int64(1); ; n++ {
		cosT = c.quo(c.mul(cosT, r2), c.i(-(2*n-1)*(2*n)))
		sinT = c.quo(c.mul(sinT, r2), c.i(-(2*n)*(2*n+1)))
		sin.Add(sin, sinT)
		cos.Add(cos, cosT)
		if (sinT.Sign() == 0 || sinT.MantExp(nil) < cutoff) &&
			(cosT.Sign() == 0 || cosT.MantExp(nil) < cutoff) {
			return sin, cos
		}
	}
}

// sphJBig returns j_0(z)..j_nmax(z) by Miller downward recurrence at the
// context precision.
func (c bigCtx) sphJBig(nmax int, z *big.Float) []*big.Float {
	zf, _ := z.Float64()
	start := nmax + int(zf) + 30
	w := make([]*big.Float, start+2)
	w[start+1] = c.i(0)
	w[start] = c.f(1e-30)
	rescale := c.new().SetMantExp(c.i(1), -1200)
	for n := start; n > 0; n-- {
		w[n-1] = c.sub(c.mul(c.quo(c.i(int64(2*n+1)), z), w[n]), w[n+1])
		if w[n-1].MantExp(nil) > 1200 {
			for k := n - 1; k < start+2; k++ {
				w[k] = c.mul(w[k], rescale)
			}
		}
	}
	sin, _ := c.sinCos(z)
	scale := c.quo(c.quo(sin, z), w[0])
	out := make([]*big.Float, nmax+1)
	for n := 0; n <= nmax; n++ {
		out[n] = c.mul(w[n], scale)
	}
	return out
}

// sphYBig returns y_0(z)..y_nmax(z) by upward recurrence at the context
// precision.
func (c bigCtx) sphYBig(nmax int, z *big.Float) []*big.Float {
	sin, cos := c.sinCos(z)
	out := make([]*big.Float, nmax+1)
	out[0] = c.quo(c.new().Neg(cos), z)
	if nmax == 0 {
		return out
	}
	z2 := c.mul(z, z)
	out[1] = c.sub(c.quo(c.new().Neg(cos), z2), c.quo(sin, z))
	for n := 1; n < nmax; n++ {
		out[n+1] = c.sub(c.mul(c.quo(c.i(int64(2*n+1)), z), out[n]), out[n-1])
	}
	return out
}
