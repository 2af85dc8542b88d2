package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs units of work inside a MongoDB multi-document transaction.
// Transactions need a replica set; with Enabled false the work runs without one.
type Transactor struct {
	client  *mongo.Client
	Enabled bool
}

func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, Enabled: enabled}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.Enabled {
		return fn(ctx)
	}

	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
