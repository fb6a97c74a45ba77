// Package protocol реализует проводной формат сообщений между акторами:
// плоский байтовый буфер, последний байт которого — тег, определяющий
// раскладку полезной нагрузки. Порядок байтов — little-endian. Буфер
// производится актором-отправителем и потребляется получателем ровно
// один раз; никакое разделяемое изменяемое состояние границу акторов
// не пересекает.
package protocol

import "fmt"

// Tag идентифицирует раскладку полезной нагрузки сообщения
type Tag byte

const (
	TagInitSimulation Tag = iota
	TagInitGenerator
	TagGenerateColumn
	TagGenerateColumnReply
	TagMeshData
	TagChunkRemoval
	TagChunkInfo
	TagPlayerCommand
	TagMovementCommand
	TagMovementCommandReply

	tagCount
)

// String возвращает имя тега для логов
func (t Tag) String() string {
	switch t {
	case TagInitSimulation:
		return "InitSimulation"
	case TagInitGenerator:
		return "InitGenerator"
	case TagGenerateColumn:
		return "GenerateColumn"
	case TagGenerateColumnReply:
		return "GenerateColumnReply"
	case TagMeshData:
		return "MeshData"
	case TagChunkRemoval:
		return "ChunkRemoval"
	case TagChunkInfo:
		return "ChunkInfo"
	case TagPlayerCommand:
		return "PlayerCommand"
	case TagMovementCommand:
		return "MovementCommand"
	case TagMovementCommandReply:
		return "MovementCommandReply"
	default:
		return fmt.Sprintf("Tag(%d)", byte(t))
	}
}

// TagOf возвращает тег сообщения — его последний байт.
// Пустой буфер и неизвестный тег — нарушение протокола.
func TagOf(message []byte) (Tag, error) {
	if len(message) == 0 {
		return 0, fmt.Errorf("пустое сообщение")
	}
	tag := Tag(message[len(message)-1])
	if tag >= tagCount {
		return 0, fmt.Errorf("неизвестный тег сообщения: %d", byte(tag))
	}
	return tag, nil
}

// Payload возвращает полезную нагрузку сообщения без байта тега
func Payload(message []byte) []byte {
	return message[:len(message)-1]
}
