// Package embedding derives a stable content fingerprint for an uploaded
// file. The vector is not a learned representation: it is a deterministic
// identity surrogate that never leaves the process and never calls an
// external service. Do not use it for semantic similarity.
package embedding

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

const Dimensions = 64

type Result struct {
	Vector []float64
	Hash   string
}

// Generate expands a digest of the file contents (or the file id when no
// contents are available) into a fixed-length vector. Two computations over
// the same input are bitwise identical.
func Generate(fileID string, contents []byte) Result {
	seed := contents

	if len(seed) == 0 {
		seed = []byte(fileID)
	}

	digest := sha256.Sum256(seed)

	vector := make([]float64, Dimensions)

	state := digest

	for i := range vector {
		if i%4 == 0 && i > 0 {
			state = sha256.Sum256(state[:])
		}

		bits := binary.LittleEndian.Uint64(state[(i%4)*8:])

		// map onto [-1, 1)
		vector[i] = float64(bits)/float64(math.MaxUint64)*2 - 1
	}

	return Result{
		Vector: vector,
		Hash:   Hash(vector),
	}
}

// Hash is a stable digest over the vector's little-endian bytes.
func Hash(vector []float64) string {
	data := make([]byte, len(vector)*8)

	for i, v := range vector {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}

	digest := sha256.Sum256(data)

	return hex.EncodeToString(digest[:])
}
