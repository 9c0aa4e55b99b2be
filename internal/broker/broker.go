package broker

import "context"

// Producer publishes a message; key selects the partition.
type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
}
