package repository

import (
	"context"
	"slices"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "deadline:users:"

// documentStore keeps JSON documents under
// deadline:users:{user}:{collection}:{id} and indexes their ids in the set
// deadline:users:{user}:{collection}.
type documentStore struct {
	client     *redis.Client
	collection string
}

func (s *documentStore) indexKey(userID string) string {
	return keyPrefix + userID + ":" + s.collection
}

func (s *documentStore) docKey(userID, id string) string {
	return s.indexKey(userID) + ":" + id
}

func (s *documentStore) put(ctx context.Context, userID, id string, data []byte) error {
	if userID == "" || id == "" {
		return ErrMissingItemOwner
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(userID, id), data, 0)
	pipe.SAdd(ctx, s.indexKey(userID), id)

	_, err := pipe.Exec(ctx)
	return err
}

// get returns redis.Nil when the document does not exist.
func (s *documentStore) get(ctx context.Context, userID, id string) ([]byte, error) {
	return s.client.Get(ctx, s.docKey(userID, id)).Bytes()
}

// list returns every stored document for userID ordered by id. Ids whose
// document has disappeared are dropped from the index.
func (s *documentStore) list(ctx context.Context, userID string) ([][]byte, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	slices.Sort(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.docKey(userID, id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, len(values))
	var stale []any
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		docs = append(docs, []byte(str))
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, s.indexKey(userID), stale...).Err(); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

// remove reports whether a document was deleted.
func (s *documentStore) remove(ctx context.Context, userID, id string) (bool, error) {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.docKey(userID, id))
	pipe.SRem(ctx, s.indexKey(userID), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}
