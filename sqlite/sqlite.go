/*
Package sqlite stores serialized examples in an SQLite database
*/
package sqlite

import (
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/datasets/tfrecord"
	"go-ml.dev/pkg/zorros"
)

const schema = `
CREATE TABLE IF NOT EXISTS examples (
	subset TEXT NOT NULL,
	seq    INTEGER NOT NULL,
	record BLOB NOT NULL,
	PRIMARY KEY (subset, seq)
)`

/*
Storage keeps examples of all subsets in one table, records are
tf.train.Example protobufs
*/
type Storage struct {
	db *sql.DB
}

func Open(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, zorros.Wrapf(err, "failed to create schema: %v", err.Error())
	}
	return &Storage{db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

/*
Create starts a transaction replacing examples of the subset
*/
func (s *Storage) Create(subset model.Subset) (model.Sink, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if _, err = tx.Exec(`DELETE FROM examples WHERE subset = ?`, string(subset)); err != nil {
		tx.Rollback()
		return nil, zorros.Trace(err)
	}
	st, err := tx.Prepare(`INSERT INTO examples (subset, seq, record) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, zorros.Trace(err)
	}
	return &sink{tx: tx, st: st, subset: subset}, nil
}

/*
Count returns number of stored examples of the subset
*/
func (s *Storage) Count(subset model.Subset) (n int, err error) {
	err = s.db.QueryRow(`SELECT COUNT(*) FROM examples WHERE subset = ?`, string(subset)).Scan(&n)
	return
}

/*
Examples returns stored examples of the subset in the written order
*/
func (s *Storage) Examples(subset model.Subset) ([]model.Example, error) {
	rows, err := s.db.Query(`SELECT record FROM examples WHERE subset = ? ORDER BY seq`, string(subset))
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rows.Close()
	var exs []model.Example
	for rows.Next() {
		var b []byte
		if err = rows.Scan(&b); err != nil {
			return nil, zorros.Trace(err)
		}
		e, err := tfrecord.UnmarshalExample(b)
		if err != nil {
			return nil, err
		}
		exs = append(exs, e)
	}
	return exs, rows.Err()
}

type sink struct {
	tx     *sql.Tx
	st     *sql.Stmt
	subset model.Subset
	seq    int
	done   bool
}

func (s *sink) Write(e model.Example) error {
	if _, err := s.st.Exec(string(s.subset), s.seq, tfrecord.MarshalExample(e)); err != nil {
		return zorros.Trace(err)
	}
	s.seq++
	return nil
}

func (s *sink) Commit() error {
	s.st.Close()
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func (s *sink) End() {
	if !s.done {
		s.st.Close()
		s.tx.Rollback()
		s.done = true
	}
}
