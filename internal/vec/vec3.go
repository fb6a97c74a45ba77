package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3) Mul(scalar int) Vec3 {
	return Vec3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// LengthSquared возвращает квадрат длины вектора
func (v Vec3) LengthSquared() int {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// DistanceSquaredTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceSquaredTo(other Vec3) int {
	return v.Sub(other).LengthSquared()
}

// IsZero возвращает true для нулевого вектора
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Единичные направления по осям
var (
	PosX = Vec3{X: 1}
	NegX = Vec3{X: -1}
	PosY = Vec3{Y: 1}
	NegY = Vec3{Y: -1}
	PosZ = Vec3{Z: 1}
	NegZ = Vec3{Z: -1}
)

// Directions перечисляет шесть направлений к соседним чанкам
// в порядке +X, -X, +Y, -Y, +Z, -Z
var Directions = [6]Vec3{PosX, NegX, PosY, NegY, PosZ, NegZ}
