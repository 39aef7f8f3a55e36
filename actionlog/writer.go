package actionlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"railway/game"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Entry is one line of the action log.
type Entry struct {
	Seq    int         `json:"seq"`
	GameID string      `json:"game_id"`
	Time   time.Time   `json:"time"`
	Action game.Action `json:"action"`
}

// Writer appends accepted actions to a zstd compressed JSON lines file.
type Writer struct {
	gameID string

	mu  sync.Mutex
	seq int
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewWriter(path, gameID string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{
		gameID: gameID,
		f:      f,
		enc:    enc,
		w:      bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

func (w *Writer) GameID() string { return w.gameID }

func (w *Writer) Write(a game.Action) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return fmt.Errorf("write %q: log is closed", a.String())
	}

	b, err := json.Marshal(Entry{
		Seq:    w.seq + 1,
		GameID: w.gameID,
		Time:   time.Now().UTC(),
		Action: a,
	})
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.seq++
	return nil
}

// Close flushes the buffered lines and finishes the zstd frame.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}

	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.w, w.enc, w.f = nil, nil, nil
	return err
}
