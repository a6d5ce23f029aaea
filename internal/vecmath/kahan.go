package vecmath

// KahanSum implements Kahan compensated summation: a running sum plus a
// running compensation for the low-order bits lost on each addition. The
// N-body integrator and conservation monitor use this for every
// accumulation across bodies, per the module's invariant that compensated
// summation is part of the contract, not an implementation detail — do
// not replace with naive summation.
type KahanSum struct {
	sum float64
	c   float64
}

// Init resets the accumulator to zero.
func (k *KahanSum) Init() {
	k.sum = 0
	k.c = 0
}

// Add accumulates x into the running sum.
func (k *KahanSum) Add(x float64) {
	y := x - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Read returns the compensated running total.
func (k *KahanSum) Read() float64 {
	return k.sum
}

// KahanVec3 is a Vec3 accumulator composed of three independent scalar
// compensators, one per axis.
type KahanVec3 struct {
	x, y, z KahanSum
}

// Init resets the accumulator to the zero vector.
func (k *KahanVec3) Init() {
	k.x.Init()
	k.y.Init()
	k.z.Init()
}

// Add accumulates v into the running sum.
func (k *KahanVec3) Add(v Vec3) {
	k.x.Add(v.X)
	k.y.Add(v.Y)
	k.z.Add(v.Z)
}

// Read returns the compensated running total.
func (k *KahanVec3) Read() Vec3 {
	return Vec3{k.x.Read(), k.y.Read(), k.z.Read()}
}
