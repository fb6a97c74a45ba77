package logging

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger представляет систему логирования
type Logger struct {
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
}

// Глобальный экземпляр логгера
var defaultLogger *Logger

// NewLogger создает логгер компонента с отдельным файлом в директории logs
func NewLogger(component string) (*Logger, error) {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории logs: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join("logs", fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	return &Logger{
		consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
		fileLogger:      log.New(file, "", log.LstdFlags),
		file:            file,
		minConsoleLevel: INFO,
		minFileLevel:    TRACE,
	}, nil
}

// InitLogger инициализирует глобальный логгер сервера
func InitLogger() error {
	logger, err := NewLogger("server")
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// CloseLogger закрывает глобальный логгер
func CloseLogger() {
	if defaultLogger != nil {
		defaultLogger.Close()
	}
}

// Close закрывает файл логгера
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Trace логирует сообщение уровня TRACE
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(TRACE, format, args...)
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	message := fmt.Sprintf("[%s] %s", level.String(), fmt.Sprintf(format, args...))

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}
	if l.consoleLogger != nil && level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// LogTrace логирует сообщение уровня TRACE
func LogTrace(format string, args ...interface{}) {
	logMessage(TRACE, format, args...)
}

// LogDebug логирует сообщение уровня DEBUG
func LogDebug(format string, args ...interface{}) {
	logMessage(DEBUG, format, args...)
}

// LogInfo логирует сообщение уровня INFO
func LogInfo(format string, args ...interface{}) {
	logMessage(INFO, format, args...)
}

// LogWarn логирует сообщение уровня WARN
func LogWarn(format string, args ...interface{}) {
	logMessage(WARN, format, args...)
}

// LogError логирует сообщение уровня ERROR
func LogError(format string, args ...interface{}) {
	logMessage(ERROR, format, args...)
}

// logMessage внутренняя функция для логирования
func logMessage(level LogLevel, format string, args ...interface{}) {
	if defaultLogger == nil {
		return
	}
	defaultLogger.log(level, format, args...)
}

// LogActorMessage логирует сообщение между акторами с hex дампом
func LogActorMessage(actorID string, direction string, tag fmt.Stringer, payload []byte) {
	LogDebug("=== %s MESSAGE %s ===", direction, actorID)
	LogDebug("Tag: %v", tag)
	LogDebug("Size: %d bytes", len(payload))

	if len(payload) > 0 {
		LogDebug("Hex dump:")
		LogDebug("%s", HexDump(payload))
	}
}

// HexDump создает hex дамп данных
func HexDump(data []byte) string {
	if len(data) == 0 {
		return "No data"
	}

	// Ограничиваем размер дампа до 256 байт
	size := len(data)
	if size > 256 {
		size = 256
	}

	return hex.Dump(data[:size])
}

// LogProtocolError логирует ошибки разбора сообщений
func LogProtocolError(actorID string, err error, data []byte) {
	LogError("Protocol error from %s: %v", actorID, err)
	if len(data) > 0 {
		LogError("Raw data (%d bytes):", len(data))
		LogError("%s", HexDump(data))
	}
}

// LogColumnRequest логирует запрос колонки чанков
func LogColumnRequest(actorID string, x, z int) {
	LogDebug("Column request to %s: column(%d,%d)", actorID, x, z)
}

// LogColumnGenerated логирует завершение генерации колонки
func LogColumnGenerated(actorID string, x, z int, chunkCount int, elapsed time.Duration) {
	LogDebug("Column generated by %s: column(%d,%d) with %d chunks in %v",
		actorID, x, z, chunkCount, elapsed)
}

// LogMeshBuilt логирует построение меша чанка
func LogMeshBuilt(chunkX, chunkY, chunkZ int, vertexCount, indexCount int) {
	LogTrace("Mesh built: chunk(%d,%d,%d) vertices:%d indices:%d",
		chunkX, chunkY, chunkZ, vertexCount, indexCount)
}
