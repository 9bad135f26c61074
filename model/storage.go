package model

/*
Subset is a name of dataset partition
*/
type Subset string

const (
	TrainSubset Subset = "train"
	ValidSubset Subset = "validation"
	TestSubset  Subset = "test"
)

/*
Subsets lists partitions in the order they are serialized
*/
var Subsets = []Subset{TrainSubset, ValidSubset, TestSubset}

/*
Sink receives examples of one subset. Written examples become visible after
Commit, End releases resources and discards uncommitted examples.
*/
type Sink interface {
	Write(Example) error
	Commit() error
	End()
}

/*
Storage creates sinks for dataset subsets
*/
type Storage interface {
	Create(Subset) (Sink, error)
}

/*
MemStorage keeps committed examples in memory
*/
type MemStorage map[Subset][]Example

type memSink struct {
	storage MemStorage
	subset  Subset
	pending []Example
}

func (m MemStorage) Create(s Subset) (Sink, error) {
	return &memSink{storage: m, subset: s}, nil
}

func (s *memSink) Write(e Example) error {
	s.pending = append(s.pending, e)
	return nil
}

func (s *memSink) Commit() error {
	s.storage[s.subset] = append(s.storage[s.subset], s.pending...)
	s.pending = nil
	return nil
}

func (s *memSink) End() {
	s.pending = nil
}
