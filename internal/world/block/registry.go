package block

// BlockID представляет идентификатор блока.
// Один байт — ровно столько блок занимает в сообщении GenerateColumnReply.
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID    BlockID = iota // 0
	DirtBlockID                  // 1
	StoneBlockID                 // 2
	SandBlockID                  // 3
	WaterBlockID                 // 4
	ButtonBlockID                // 5

	// MaxBlockID — верхняя граница зарегистрированных ID
	MaxBlockID = ButtonBlockID
)

var registry = make(map[BlockID]BlockBehavior)

// Кэшированные свойства для горячих циклов (мешер, генератор, рейкаст).
// Заполняются при регистрации, чтобы не ходить в map на каждый воксель.
var (
	transparentTable [256]bool
	atlasTable       [256][6][2]uint8
)

// Register добавляет поведение блока в регистр и кэширует его свойства
func Register(id BlockID, behavior BlockBehavior) {
	registry[id] = behavior
	transparentTable[id] = !behavior.Opaque()
	atlasTable[id] = behavior.AtlasTiles()
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// Transparent возвращает true, если блок прозрачный (воздух, вода).
// Прозрачность — единственное производное свойство, от которого зависят
// маска прозрачности чанка, отсечение граней и коллизии.
func (id BlockID) Transparent() bool {
	return transparentTable[id]
}

// Opaque возвращает true для непрозрачных блоков
func (id BlockID) Opaque() bool {
	return !transparentTable[id]
}

// AtlasTiles возвращает координаты тайлов атласа текстур для шести граней
// блока в порядке +X, -X, +Y, -Y, +Z, -Z
func (id BlockID) AtlasTiles() [6][2]uint8 {
	return atlasTable[id]
}
