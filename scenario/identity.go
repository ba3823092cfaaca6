package scenario

import (
	"math/rand"
	"sync"
	"time"
)

const (
	IDLength          = 10
	DescriptionLength = 20

	identityCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Identity is the per run resource identity. It is generated once per run and
// used for create, update and delete.
type Identity struct {
	ID          string
	Description string
}

var (
	randMu  sync.Mutex
	randSrc = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewIdentity returns a fresh random identity.
func NewIdentity() Identity {
	randMu.Lock()
	defer randMu.Unlock()
	return NewIdentityFrom(randSrc)
}

// NewIdentityFrom draws an identity from r, which must not be used concurrently.
func NewIdentityFrom(r *rand.Rand) Identity {
	return Identity{
		ID:          randomString(r, IDLength),
		Description: randomString(r, DescriptionLength),
	}
}

func randomString(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = identityCharset[r.Intn(len(identityCharset))]
	}
	return string(b)
}
