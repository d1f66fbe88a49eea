package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// ErrBackendRequired is returned when a repository is created without a backend.
var ErrBackendRequired = errors.New("badger backend is required")

// NewEmbeddingRepository creates a new embedding repository on backend.
func NewEmbeddingRepository(backend *Backend) (storage.EmbeddingRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &EmbeddingRepository{
		backend: backend,
		logger:  backend.logger.With("repository", "embedding"),
	}, nil
}

// GetEmbeddings returns the stored vectors for hashes under model.
func (r *EmbeddingRepository) GetEmbeddings(ctx context.Context, model string, hashes ...core.ContentHash) (map[core.ContentHash][]float32, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	found := make(map[core.ContentHash][]float32, len(hashes))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, hash := range hashes {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tx.Get(makeEmbeddingKey(model, hash))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				vector, err := storage.UnmarshalVector(val)
				if err != nil {
					return err
				}
				found[hash] = vector
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("loaded embeddings", "model", model, "requested", len(hashes), "found", len(found))
	return found, nil
}

// PutEmbeddings stores vectors under model.
func (r *EmbeddingRepository) PutEmbeddings(ctx context.Context, model string, vectors map[core.ContentHash][]float32) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if len(vectors) == 0 {
		return nil
	}

	err := r.backend.WithWriteBatch(func(wb *badger.WriteBatch) error {
		for hash, vector := range vectors {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeEmbeddingKey(model, hash), storage.MarshalVector(vector)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("stored embeddings", "model", model, "count", len(vectors))
	return nil
}

// CountEmbeddings returns the number of vectors stored under model.
func (r *EmbeddingRepository) CountEmbeddings(ctx context.Context, model string) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEmbeddingPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return ctx.Err()
	}, false)
	return count, err
}

// Purge removes every stored vector and the manifest.
func (r *EmbeddingRepository) Purge(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	removed, err := r.backend.DeletePrefix([]byte(embeddingPrefix), makeManifestKey())
	if err != nil {
		return err
	}
	r.logger.Info("purged embedding cache", "keys", removed)
	return nil
}

// Close is a no-op; the backend owns the database handle.
func (r *EmbeddingRepository) Close() error {
	return nil
}
