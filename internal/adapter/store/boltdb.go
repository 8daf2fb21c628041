// Package store persists build-run summaries in a bbolt database so watch
// mode and the history command can inspect past runs.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"srcpack/internal/domain"
)

var bucketRuns = []byte("runs")

type BoltRunStore struct {
	db *bbolt.DB
}

func NewBoltRunStore(path string) (*BoltRunStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs bucket: %w", err)
	}

	return &BoltRunStore{db: db}, nil
}

// AppendRun stores a run summary under the next sequence number.
func (s *BoltRunStore) AppendRun(summary domain.RunSummary) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		data, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// ListRuns returns up to limit summaries, most recent first. A non-positive
// limit returns everything.
func (s *BoltRunStore) ListRuns(limit int) ([]domain.RunSummary, error) {
	var runs []domain.RunSummary
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var summary domain.RunSummary
			if err := json.Unmarshal(v, &summary); err != nil {
				return fmt.Errorf("corrupt run entry: %w", err)
			}
			runs = append(runs, summary)
		}
		return nil
	})
	return runs, err
}

func (s *BoltRunStore) Close() error {
	return s.db.Close()
}
