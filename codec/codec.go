package codec

// Codec converts values V to and from []byte for storage in a backend.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
