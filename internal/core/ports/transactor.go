package ports

import "context"

// Transactor runs fn inside a single storage transaction. Repositories called
// with the ctx passed to fn join that transaction, so a domain write and its
// audit record commit or roll back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
