package graph

import (
	"strconv"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns a 64-bit highwayhash fingerprint of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns the hex encoded Hash of data, empty on error
func Fingerprint(data []byte) string {
	sum, err := Hash(data)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(sum, 16)
}
