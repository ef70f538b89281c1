package dupfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEqual(t *testing.T) {
	t.Parallel()

	hashA := Digest{0x01, 0x02}
	hashB := Digest{0x01, 0x03}

	tests := []struct {
		name     string
		a, b     Key
		equal    bool
		confirms bool
	}{
		{
			name:  "same size without hashes",
			a:     NewKey(4),
			b:     NewKey(4),
			equal: true,
		},
		{
			name: "different sizes",
			a:    NewKey(4),
			b:    NewKey(5),
		},
		{
			name:     "same size and hash",
			a:        NewKey(4).WithHash(hashA),
			b:        NewKey(4).WithHash(hashA),
			equal:    true,
			confirms: true,
		},
		{
			name: "same size different hash",
			a:    NewKey(4).WithHash(hashA),
			b:    NewKey(4).WithHash(hashB),
		},
		{
			name:  "one side pending",
			a:     NewKey(4).WithHash(hashA),
			b:     NewKey(4),
			equal: true,
		},
		{
			name:  "one side excluded",
			a:     NewKey(4).WithHash(hashA),
			b:     NewKey(4).Excluded(),
			equal: true,
		},
		{
			name: "different sizes same hash",
			a:    NewKey(4).WithHash(hashA),
			b:    NewKey(5).WithHash(hashA),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a))
			assert.Equal(t, tt.confirms, tt.a.Confirms(tt.b))
			assert.Equal(t, tt.confirms, tt.b.Confirms(tt.a))
		})
	}
}

func TestKeyStates(t *testing.T) {
	t.Parallel()

	k := NewKey(10)
	assert.Equal(t, HashPending, k.State)
	assert.Nil(t, k.Hash)

	hashed := k.WithHash(Digest{0xab, 0xcd})
	assert.Equal(t, HashComputed, hashed.State)
	assert.Equal(t, "abcd", hashed.Hash.String())
	assert.Equal(t, uint64(10), hashed.Size)
	assert.Equal(t, HashPending, k.State, "WithHash must not modify the receiver")

	excluded := hashed.Excluded()
	assert.Equal(t, HashExcluded, excluded.State)
	assert.Nil(t, excluded.Hash)
	assert.Equal(t, "excluded", excluded.State.String())
}
