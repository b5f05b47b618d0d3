package store

import (
	"bytes"
	"cmp"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memEntry struct {
	seq int64
	raw bson.Raw
}

// Memory is a Store kept in process memory. Documents are held in their
// BSON encoding so reads never alias stored state and updates merge exactly
// like a $set.
type Memory[T any, PT Document[T]] struct {
	name string
	sort bson.D

	mu   sync.RWMutex
	seq  int64
	docs map[primitive.ObjectID]memEntry
}

func NewMemory[T any, PT Document[T]](collection string, sort bson.D) *Memory[T, PT] {
	return &Memory[T, PT]{
		name: collection,
		sort: sort,
		docs: make(map[primitive.ObjectID]memEntry),
	}
}

func (s *Memory[T, PT]) fail(op string, err error) error {
	return &Error{Op: op, Collection: s.name, Err: err}
}

func (s *Memory[T, PT]) decode(raw bson.Raw) (T, error) {
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, s.fail("decode", err)
	}
	return doc, nil
}

func (s *Memory[T, PT]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	entries := make([]memEntry, 0, len(s.docs))
	for _, e := range s.docs {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		for _, key := range s.sort {
			dir, _ := key.Value.(int)
			c := compareRaw(entries[i].raw.Lookup(key.Key), entries[j].raw.Lookup(key.Key))
			if c != 0 {
				if dir < 0 {
					return c > 0
				}
				return c < 0
			}
		}
		return entries[i].seq < entries[j].seq
	})

	items := make([]T, 0, len(entries))
	for _, e := range entries {
		doc, err := s.decode(e.raw)
		if err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	return items, nil
}

func (s *Memory[T, PT]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	s.mu.RLock()
	e, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return s.decode(e.raw)
}

func (s *Memory[T, PT]) Create(ctx context.Context, doc T) (T, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	meta := PT(&doc).Meta()
	meta.ID = primitive.NewObjectID()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	raw, err := bson.Marshal(doc)
	if err != nil {
		var zero T
		return zero, s.fail("insert", err)
	}

	s.mu.Lock()
	s.seq++
	s.docs[meta.ID] = memEntry{seq: s.seq, raw: raw}
	s.mu.Unlock()
	return s.decode(raw)
}

func (s *Memory[T, PT]) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (T, error) {
	var zero T
	update := cleanSet(set)
	update["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.docs[id]
	if !ok {
		return zero, ErrNotFound
	}
	var current bson.M
	if err := bson.Unmarshal(e.raw, &current); err != nil {
		return zero, s.fail("update", err)
	}
	for k, v := range update {
		current[k] = v
	}
	raw, err := bson.Marshal(current)
	if err != nil {
		return zero, s.fail("update", err)
	}
	doc, err := s.decode(raw)
	if err != nil {
		return zero, err
	}
	s.docs[id] = memEntry{seq: e.seq, raw: raw}
	return doc, nil
}

func (s *Memory[T, PT]) Delete(ctx context.Context, id primitive.ObjectID) (T, error) {
	s.mu.Lock()
	e, ok := s.docs[id]
	delete(s.docs, id)
	s.mu.Unlock()
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return s.decode(e.raw)
}

func (s *Memory[T, PT]) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

func (s *Memory[T, PT]) Ping(ctx context.Context) error { return ctx.Err() }

// compareRaw orders BSON values the way the sort keys in this repo need:
// missing < numbers < strings < dates < booleans < object ids, numbers
// compared numerically.
func compareRaw(a, b bson.RawValue) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 1:
		return cmp.Compare(number(a), number(b))
	case 2:
		return cmp.Compare(a.StringValue(), b.StringValue())
	case 3:
		return cmp.Compare(a.DateTime(), b.DateTime())
	case 4:
		return cmp.Compare(boolInt(a.Boolean()), boolInt(b.Boolean()))
	case 5:
		oa, ob := a.ObjectID(), b.ObjectID()
		return bytes.Compare(oa[:], ob[:])
	}
	return 0
}

func rank(v bson.RawValue) int {
	switch v.Type {
	case bsontype.Int32, bsontype.Int64, bsontype.Double:
		return 1
	case bsontype.String:
		return 2
	case bsontype.DateTime:
		return 3
	case bsontype.Boolean:
		return 4
	case bsontype.ObjectID:
		return 5
	}
	return 0
}

func number(v bson.RawValue) float64 {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32())
	case bsontype.Int64:
		return float64(v.Int64())
	}
	return v.Double()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
