package store

import "github.com/vmihailenco/msgpack/v5"

// EncodeValue serializes an attribute value for storage. A nil value
// (explicit deletion) encodes to an empty byte slice rather than an
// encoded nil, so Deleted can be read back from row length alone.
func EncodeValue(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return msgpack.Marshal(v)
}

// DecodeValue is the inverse of EncodeValue. An empty slice decodes to
// nil.
func DecodeValue(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var v any
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
