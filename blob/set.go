package blob

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Schema is implemented by user types that know their own layout.
//
// Serialize must call the encoder's Write* methods in a fixed declaration
// order; Take must call the matching Take* methods in the identical order,
// returning errs.ErrColumnExhausted (or any error) when a column runs dry.
// Field names are never emitted: the schema carries the structure on both
// sides.
type Schema interface {
	Version() byte
	Serialize(enc *Encoder)
	Take(dec *Decoder) error
}

// EncodeSet encodes every schema into its own payload, fanning the work out
// across GOMAXPROCS goroutines. Each worker owns a private Encoder, so
// schemas only need to tolerate their own Serialize running off the caller's
// goroutine. The first error (or context cancellation) aborts the set.
func EncodeSet(ctx context.Context, schemas []Schema) ([][]byte, error) {
	payloads := make([][]byte, len(schemas))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, s := range schemas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			enc, err := NewEncoder()
			if err != nil {
				return err
			}

			enc.Begin()
			s.Serialize(enc)
			payloads[i] = enc.Finish(nil, s.Version())

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return payloads, nil
}

// DecodeSet decodes payloads[i] into schemas[i] concurrently. The slices
// must have equal length; the first failure aborts the set.
func DecodeSet(ctx context.Context, payloads [][]byte, schemas []Schema) error {
	if len(payloads) != len(schemas) {
		return fmt.Errorf("payload count %d does not match schema count %d", len(payloads), len(schemas))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, s := range schemas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			dec := NewDecoder()
			if err := dec.Decode(payloads[i], s.Version()); err != nil {
				return fmt.Errorf("payload %d: %w", i, err)
			}

			return s.Take(dec)
		})
	}

	return g.Wait()
}
