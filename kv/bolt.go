package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/mo"
	bolt "go.etcd.io/bbolt"
)

var bucketValues = []byte("values")

// Bolt stores values in a single bbolt bucket.
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens or creates the database at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketValues)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(_ context.Context, key string) (mo.Option[string], error) {
	value := mo.None[string]()

	err := b.db.View(func(tx *bolt.Tx) error {
		// bolt values are only valid inside the transaction, string() copies.
		if raw := tx.Bucket(bucketValues).Get([]byte(key)); raw != nil {
			value = mo.Some(string(raw))
		}
		return nil
	})

	return value, err
}

func (b *Bolt) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketValues).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Delete(_ context.Context, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketValues).Delete([]byte(key))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
