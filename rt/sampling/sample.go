package sampling

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrthonormalBasis builds two tangent vectors forming a right-handed frame
// with n. Branching on the sign of n.z keeps the construction finite at the
// antipodal pole (Duff et al.).
func OrthonormalBasis(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	x, y, z := n.X(), n.Y(), n.Z()
	if z < 0 {
		a := 1.0 / (1.0 - z)
		b := x * y * a
		return mgl32.Vec3{1 - x*x*a, -b, x}, mgl32.Vec3{b, y*y*a - 1, -y}
	}
	a := -1.0 / (1.0 + z)
	b := x * y * a
	return mgl32.Vec3{1 + x*x*a, b, -x}, mgl32.Vec3{b, 1 + y*y*a, -y}
}

// CosineHemisphere maps a 2D uniform sample to a direction distributed
// proportionally to the cosine of the angle to n. The returned direction
// always has a non-negative dot with n.
func CosineHemisphere(n mgl32.Vec3, xi mgl32.Vec2) mgl32.Vec3 {
	tangent, bitangent := OrthonormalBasis(n)
	phi := 2 * math.Pi * float64(xi.X())
	r := math.Sqrt(float64(xi.Y()))
	lx := float32(r * math.Cos(phi))
	ly := float32(r * math.Sin(phi))
	lz := float32(math.Sqrt(math.Max(0, 1-float64(xi.Y()))))
	return tangent.Mul(lx).Add(bitangent.Mul(ly)).Add(n.Mul(lz)).Normalize()
}

// GGXMicrofacet importance-samples a microfacet normal around n from the GGX
// distribution with squared roughness alphaSq. alphaSq of zero collapses the
// lobe onto n itself.
func GGXMicrofacet(n mgl32.Vec3, xi mgl32.Vec2, alphaSq float32) mgl32.Vec3 {
	cos2 := (1 - xi.X()) / (1 + (alphaSq-1)*xi.X())
	cosTheta := float32(math.Sqrt(math.Max(0, float64(cos2))))
	sinTheta := float32(math.Sqrt(math.Max(0, float64(1-cos2))))
	phi := 2 * math.Pi * float64(xi.Y())
	tangent, bitangent := OrthonormalBasis(n)
	lx := sinTheta * float32(math.Cos(phi))
	ly := sinTheta * float32(math.Sin(phi))
	return tangent.Mul(lx).Add(bitangent.Mul(ly)).Add(n.Mul(cosTheta)).Normalize()
}

// FresnelDielectric evaluates the exact dielectric reflectance for an
// incident direction against a microfacet normal at relative index eta.
// Total internal reflection returns exactly 1; the transmitted cosine is
// guarded so the square root never goes invalid.
func FresnelDielectric(incident, m mgl32.Vec3, eta float32) float32 {
	cosI := -incident.Dot(m)
	if cosI < 0 {
		cosI = -cosI
	}
	if cosI > 1 {
		cosI = 1
	}
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T >= 1 {
		return 1
	}
	cosT := float32(math.Sqrt(float64(1 - sin2T)))
	rs := (eta*cosI - cosT) / (eta*cosI + cosT)
	rp := (cosI - eta*cosT) / (cosI + eta*cosT)
	return 0.5 * (rs*rs + rp*rp)
}

// Reflect mirrors v about the unit normal n.
func Reflect(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
