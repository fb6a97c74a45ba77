package vec

import "math"

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Используется float32, так как именно в этой точности координаты
// ходят по проводу между акторами.
type Vec3Float struct {
	X float32
	Y float32
	Z float32
}

// FromVec3 создает Vec3Float из Vec3
func FromVec3(v Vec3) Vec3Float {
	return Vec3Float{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float32) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalized возвращает нормализованный вектор.
// Нулевой вектор остается нулевым.
func (v Vec3Float) Normalized() Vec3Float {
	length := v.Length()
	if length == 0 {
		return Vec3Float{}
	}
	return Vec3Float{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// Floor возвращает покомпонентный floor в целочисленном векторе
func (v Vec3Float) Floor() Vec3 {
	return Vec3{
		X: int(math.Floor(float64(v.X))),
		Y: int(math.Floor(float64(v.Y))),
		Z: int(math.Floor(float64(v.Z))),
	}
}

// IsZero возвращает true для нулевого вектора
func (v Vec3Float) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
