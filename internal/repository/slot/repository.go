package slot

import "context"

// Repository stores named whole-payload slots per owner, the durable
// equivalent of the browser storage the storefront front ends use. Reads and
// writes cover the full payload; callers never observe a partial write.
type Repository interface {
	// Read returns the payload stored under (ownerID, name), or
	// domain.ErrNotFound when the slot was never written.
	Read(ctx context.Context, ownerID, name string) ([]byte, error)
	Write(ctx context.Context, ownerID, name string, payload []byte) error
	Delete(ctx context.Context, ownerID, name string) error
}
