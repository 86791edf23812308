package blob

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/confpack/errs"
)

// serviceConfig is a small schema used to exercise batch encode/decode.
type serviceConfig struct {
	name     string
	replicas int64
	enabled  bool
}

func (c *serviceConfig) Version() byte { return 1 }

func (c *serviceConfig) Serialize(enc *Encoder) {
	enc.WriteString(c.name)
	enc.WriteInt(c.replicas)
	enc.WriteBool(c.enabled)
}

func (c *serviceConfig) Take(dec *Decoder) error {
	var ok bool
	if c.name, ok = dec.TakeString(); !ok {
		return errs.ErrColumnExhausted
	}
	if c.replicas, ok = dec.TakeInt(); !ok {
		return errs.ErrColumnExhausted
	}
	if c.enabled, ok = dec.TakeBool(); !ok {
		return errs.ErrColumnExhausted
	}

	return nil
}

func TestEncodeSet_RoundTrip(t *testing.T) {
	const n = 50

	originals := make([]Schema, 0, n)
	for i := range n {
		originals = append(originals, &serviceConfig{
			name:     "service-" + strconv.Itoa(i),
			replicas: int64(i % 7),
			enabled:  i%2 == 0,
		})
	}

	payloads, err := EncodeSet(context.Background(), originals)
	require.NoError(t, err)
	require.Len(t, payloads, n)

	decoded := make([]Schema, 0, n)
	for range n {
		decoded = append(decoded, &serviceConfig{})
	}
	require.NoError(t, DecodeSet(context.Background(), payloads, decoded))

	for i := range n {
		require.Equal(t, originals[i], decoded[i])
	}
}

func TestDecodeSet_LengthMismatch(t *testing.T) {
	err := DecodeSet(context.Background(), make([][]byte, 2), []Schema{&serviceConfig{}})
	require.Error(t, err)
}

func TestDecodeSet_FirstErrorAborts(t *testing.T) {
	cfg := &serviceConfig{name: "a", replicas: 1, enabled: true}
	payloads, err := EncodeSet(context.Background(), []Schema{cfg, cfg})
	require.NoError(t, err)

	payloads[1] = payloads[1][:1] // corrupt one payload

	err = DecodeSet(context.Background(), payloads, []Schema{&serviceConfig{}, &serviceConfig{}})
	require.ErrorIs(t, err, errs.ErrTruncatedPayload)
}

func TestEncodeSet_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	schemas := make([]Schema, 100)
	for i := range schemas {
		schemas[i] = &serviceConfig{name: "x"}
	}

	_, err := EncodeSet(ctx, schemas)
	require.ErrorIs(t, err, context.Canceled)
}
