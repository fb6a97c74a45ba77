package block

// BlockBehavior определяет статические свойства типа блока.
// Блок — значение без идентичности: все его свойства выводятся из ID.
type BlockBehavior interface {
	// ID возвращает идентификатор блока
	ID() BlockID

	// Name возвращает имя блока
	Name() string

	// Opaque возвращает true, если блок полностью непрозрачен.
	// Прозрачные блоки не создают коллизий и не отсекают грани соседей.
	Opaque() bool

	// AtlasTiles возвращает координаты тайлов атласа текстур для шести
	// граней блока в порядке +X, -X, +Y, -Y, +Z, -Z
	AtlasTiles() [6][2]uint8
}
