// Package cuid2 generates compact, time-sortable identifiers for user-owned
// records (alerts, notifications).
package cuid2

import (
	crypto_rand "crypto/rand"
	"strings"
	"time"
)

// Base62 alphabet: 0-9, A-Z, a-z (62 characters)
const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// defaultRandomLength is the random suffix length behind the time prefix.
const defaultRandomLength = 18

// encodeTimestamp encodes a Unix timestamp (seconds) as a 6-character base62
// string, lexicographically sortable for any realistic timestamp.
func encodeTimestamp(timestampSeconds int64) string {
	n := timestampSeconds
	result := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		result[i] = base62Alphabet[n%62]
		n = n / 62
	}
	return string(result)
}

// randomBase62 generates a base62 string using rejection sampling so every
// character stays uniformly distributed (~5.95 bits of entropy per character).
func randomBase62(length int) string {
	bytesNeeded := (length*6)/8 + 4
	buf := make([]byte, bytesNeeded)
	if _, err := crypto_rand.Read(buf); err != nil {
		panic("failed to read random bytes: " + err.Error())
	}

	var result strings.Builder
	bitBuffer := uint64(0)
	bitsInBuffer := uint(0)
	byteIndex := 0

	for result.Len() < length {
		for bitsInBuffer < 6 && byteIndex < len(buf) {
			bitBuffer = (bitBuffer << 8) | uint64(buf[byteIndex])
			bitsInBuffer += 8
			byteIndex++
		}

		value := (bitBuffer >> (bitsInBuffer - 6)) & 0x3f
		bitsInBuffer -= 6

		// Reject values >= 62 to keep the distribution uniform.
		if value < 62 {
			result.WriteByte(base62Alphabet[value])
		}

		if byteIndex >= len(buf) && result.Len() < length {
			if _, err := crypto_rand.Read(buf); err != nil {
				panic("failed to read random bytes: " + err.Error())
			}
			byteIndex = 0
			bitBuffer = 0
			bitsInBuffer = 0
		}
	}

	return result.String()
}

// New generates a prefixed, time-sortable identifier.
//
// Examples:
//
//	New("alr") // "alr_0CL2KwaB3cD5eF7gH9iJ1k"
//	New("ntf") // "ntf_0CL2KxQ9zY8wV7uT6sR5qP"
func New(prefix string) string {
	return prefix + "_" + encodeTimestamp(time.Now().Unix()) + randomBase62(defaultRandomLength)
}
