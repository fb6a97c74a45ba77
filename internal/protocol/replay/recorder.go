// Package replay пишет и читает журналы сообщений между акторами.
// Журнал — gzip-поток кадров: u64 смещение от старта записи в
// наносекундах, u32 длина, затем байты сообщения как есть (включая тег).
// Журнал позволяет воспроизвести сессию симуляции детерминированно.
package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Frame — одно записанное сообщение
type Frame struct {
	Offset  time.Duration
	Message []byte
}

// Recorder последовательно дописывает кадры в gzip-файл.
// Потокобезопасен: сообщения приходят из нескольких акторов.
type Recorder struct {
	mu      sync.Mutex
	file    *os.File
	gz      *gzip.Writer
	started time.Time
	closed  bool
}

// NewRecorder открывает файл журнала на запись
func NewRecorder(path string) (*Recorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("открытие журнала %s: %w", path, err)
	}
	gz, err := gzip.NewWriterLevel(file, gzip.BestSpeed)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &Recorder{
		file:    file,
		gz:      gz,
		started: time.Now(),
	}, nil
}

// Record дописывает одно сообщение в журнал
func (r *Recorder) Record(message []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New("журнал уже закрыт")
	}

	var header [12]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(time.Since(r.started)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(message)))
	if _, err := r.gz.Write(header[:]); err != nil {
		return fmt.Errorf("запись кадра: %w", err)
	}
	if _, err := r.gz.Write(message); err != nil {
		return fmt.Errorf("запись кадра: %w", err)
	}
	return nil
}

// Close досылает буферы и закрывает файл
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.gz.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// ReadAll читает все кадры журнала
func ReadAll(path string) ([]Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие журнала %s: %w", path, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала %s: %w", path, err)
	}
	defer gz.Close()

	var frames []Frame
	var header [12]byte
	for {
		if _, err := io.ReadFull(gz, header[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return nil, fmt.Errorf("чтение кадра %d: %w", len(frames), err)
		}
		offset := time.Duration(binary.LittleEndian.Uint64(header[0:8]))
		length := binary.LittleEndian.Uint32(header[8:12])
		message := make([]byte, length)
		if _, err := io.ReadFull(gz, message); err != nil {
			return nil, fmt.Errorf("чтение кадра %d: %w", len(frames), err)
		}
		frames = append(frames, Frame{Offset: offset, Message: message})
	}
}
