package mesh

// Vertex — одна вершина меша чанка. Позиция смещена на координаты
// вокселя внутри чанка, UV берется из атласа текстур, faceIndex
// используется шейдером для ориентации и затенения грани.
// Порядок и размер полей — контракт провода сообщения MeshData.
type Vertex struct {
	Pos       [4]float32
	TexCoord  [2]float32
	FaceIndex uint32
}

// VertexSize — размер вершины на проводе в байтах
const VertexSize = 4*4 + 2*4 + 4

// Размер атласа текстур в тайлах
const (
	atlasUTiles = 4
	atlasVTiles = 4
)

// cubeVertices — канонические 24 вершины единичного куба, по четыре на
// грань: (позиция, UV тайла). Для боковых граней v = !y.
var cubeVertices = [24]struct {
	pos [3]float32
	uv  [2]float32
}{
	// +Z, u=x
	{[3]float32{0, 0, 1}, [2]float32{0, 1}},
	{[3]float32{1, 0, 1}, [2]float32{1, 1}},
	{[3]float32{1, 1, 1}, [2]float32{1, 0}},
	{[3]float32{0, 1, 1}, [2]float32{0, 0}},
	// -Z, u=!x
	{[3]float32{0, 1, 0}, [2]float32{1, 0}},
	{[3]float32{1, 1, 0}, [2]float32{0, 0}},
	{[3]float32{1, 0, 0}, [2]float32{0, 1}},
	{[3]float32{0, 0, 0}, [2]float32{1, 1}},
	// +X, u=!z
	{[3]float32{1, 0, 0}, [2]float32{1, 1}},
	{[3]float32{1, 1, 0}, [2]float32{1, 0}},
	{[3]float32{1, 1, 1}, [2]float32{0, 0}},
	{[3]float32{1, 0, 1}, [2]float32{0, 1}},
	// -X, u=z
	{[3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]float32{0, 1, 1}, [2]float32{1, 0}},
	{[3]float32{0, 1, 0}, [2]float32{0, 0}},
	{[3]float32{0, 0, 0}, [2]float32{0, 1}},
	// +Y, uv=xz
	{[3]float32{1, 1, 0}, [2]float32{1, 0}},
	{[3]float32{0, 1, 0}, [2]float32{0, 0}},
	{[3]float32{0, 1, 1}, [2]float32{0, 1}},
	{[3]float32{1, 1, 1}, [2]float32{1, 1}},
	// -Y, uv=!x!z
	{[3]float32{1, 0, 1}, [2]float32{0, 0}},
	{[3]float32{0, 0, 1}, [2]float32{1, 0}},
	{[3]float32{0, 0, 0}, [2]float32{1, 1}},
	{[3]float32{1, 0, 0}, [2]float32{0, 1}},
}

// faceVertexBase — смещение четверки вершин грани в cubeVertices,
// индексировано faceIndex (+X, -X, +Y, -Y, +Z, -Z)
var faceVertexBase = [6]int{8, 12, 16, 20, 0, 4}

// quadIndexPattern — два треугольника на четверку вершин грани
var quadIndexPattern = [6]uint16{0, 1, 2, 2, 3, 0}
