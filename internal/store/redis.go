package store

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"

    "github.com/redis/go-redis/v9"

    "github.com/odelyak/campboard/internal/model"
)

// RedisStore keeps the shared document as a single JSON value under one
// key per organization.  Reads and writes are whole-document GET/SET;
// the advisory lock state travels inside the same value it protects, so
// two concurrent writers can still race (the later SET wins silently).
type RedisStore struct {
    rdb *redis.Client
    key string
}

// NewRedisStore builds a store for one organization's document.
func NewRedisStore(rdb *redis.Client, orgID string) *RedisStore {
    return &RedisStore{rdb: rdb, key: "schedule:doc:" + orgID}
}

// Fetch reads and decodes the shared document.  A missing key yields a
// fresh empty document, so first boot needs no seeding step.
func (s *RedisStore) Fetch(ctx context.Context) (*model.Document, error) {
    bs, err := s.rdb.Get(ctx, s.key).Bytes()
    if errors.Is(err, redis.Nil) {
        return model.NewDocument(), nil
    }
    if err != nil {
        return nil, fmt.Errorf("%w: fetch %s: %v", ErrRemoteUnavailable, s.key, err)
    }
    return decodeDocument(bs)
}

// Put replaces the shared document.  No TTL: the schedule outlives any
// session.
func (s *RedisStore) Put(ctx context.Context, doc *model.Document) error {
    bs, err := encodeDocument(doc)
    if err != nil {
        return err
    }
    if err := s.rdb.Set(ctx, s.key, bs, 0).Err(); err != nil {
        return fmt.Errorf("%w: put %s: %v", ErrRemoteUnavailable, s.key, err)
    }
    return nil
}

// encodeDocument stamps the current schema version and marshals.
func encodeDocument(doc *model.Document) ([]byte, error) {
    if doc == nil {
        doc = model.NewDocument()
    }
    doc.SchemaVersion = model.SchemaVersion
    return json.Marshal(doc)
}

// decodeDocument unmarshals a stored document and validates its schema
// version.  Documents written before versioning (version 0) are accepted
// and stamped forward; versions newer than this build are rejected.
func decodeDocument(bs []byte) (*model.Document, error) {
    var doc model.Document
    if err := json.Unmarshal(bs, &doc); err != nil {
        return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
    }
    if doc.SchemaVersion > model.SchemaVersion {
        return nil, fmt.Errorf("%w: got %d, understand up to %d",
            ErrSchemaVersion, doc.SchemaVersion, model.SchemaVersion)
    }
    doc.SchemaVersion = model.SchemaVersion
    if doc.Days == nil {
        doc.Days = make(map[string]*model.DayEntry)
    }
    return &doc, nil
}
