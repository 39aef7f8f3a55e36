package actionlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"railway/game"

	"github.com/klauspost/compress/zstd"
)

// Read decodes every entry of the log at path. Entries must belong to one game
// and be numbered from 1 without gaps.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var entries []Entry
	for sc.Scan() {
		var entry Entry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("%s: line %d: unmarshal: %w", filepath.Base(path), len(entries)+1, err)
		}
		if entry.Seq != len(entries)+1 {
			return nil, fmt.Errorf("%s: sequence mismatch: want=%d got=%d", filepath.Base(path), len(entries)+1, entry.Seq)
		}
		if len(entries) > 0 && entry.GameID != entries[0].GameID {
			return nil, fmt.Errorf("%s: line %d: game %s in log of game %s", filepath.Base(path), entry.Seq, entry.GameID, entries[0].GameID)
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return entries, nil
}

func Actions(entries []Entry) []game.Action {
	actions := make([]game.Action, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	return actions
}
