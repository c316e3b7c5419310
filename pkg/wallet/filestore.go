package wallet

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// Bloom filter sizing for the duplicate guard.
const (
	filterCapacity = 100_000
	filterFPRate   = 0.0001
)

// FileStore appends one JSON record per line to a file readable only by
// its owner.
type FileStore struct {
	mu     sync.Mutex
	path   string
	sealer *Sealer
	seen   *bloom.BloomFilter
}

// NewFileStore opens (or prepares to create) the store at path. Addresses
// already in the file are loaded into the duplicate filter.
func NewFileStore(path string, sealer *Sealer) (*FileStore, error) {
	f := &FileStore{
		path:   path,
		sealer: sealer,
		seen:   bloom.NewWithEstimates(filterCapacity, filterFPRate),
	}

	err := f.scan(func(rec Record) bool {
		f.seen.AddString(rec.Address)
		return true
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Persist implements jobs.WalletStore.
func (f *FileStore) Persist(ctx context.Context, requesterID string, result worker.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := newRecord(requesterID, result, f.sealer)
	if err != nil {
		return err
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestString(result.Address) {
		dup, err := f.contains(result.Address)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: %s", ErrDuplicate, result.Address)
		}
	}

	_, statErr := os.Stat(f.path)
	created := errors.Is(statErr, fs.ErrNotExist)

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening wallet file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing wallet file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing wallet file: %w", err)
	}

	if created {
		_ = hideFile(f.path)
	}
	f.seen.AddString(result.Address)
	return nil
}

// Records returns every stored record, with secrets opened when the store
// has a sealer.
func (f *FileStore) Records() ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		out     []Record
		openErr error
	)
	err := f.scan(func(rec Record) bool {
		if f.sealer != nil {
			rec, openErr = rec.Reveal(f.sealer)
			if openErr != nil {
				return false
			}
		}
		out = append(out, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, openErr
}

// Close implements Store. The file is opened per write, so there is
// nothing to release.
func (f *FileStore) Close() error { return nil }

// contains does the exact check behind a bloom filter hit.
func (f *FileStore) contains(address string) (bool, error) {
	found := false
	err := f.scan(func(rec Record) bool {
		found = rec.Address == address
		return !found
	})
	return found, err
}

// scan calls fn for each record until fn returns false. A missing file is
// an empty store.
func (f *FileStore) scan(fn func(Record) bool) error {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening wallet file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("%s line %d: %w", f.path, lineNo, err)
		}
		if !fn(rec) {
			return nil
		}
	}
	return scanner.Err()
}
