// Package genpassword generates example initial passwords for User resources created without
// one. It exists only so a freshly provisioned directory entry has something to bind with; it is
// not a credential management system (spec.md §1 names "an example password generator" as
// peripheral to the core). No library in the reference pack addresses random printable-password
// generation, so this is built on crypto/rand alone (DESIGN.md, "no suitable third-party library").
package genpassword

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%"

// Length is the number of characters Generate produces.
const Length = 16

// Generate returns a random password drawn from alphabet, suitable as a placeholder initial
// credential for a directory entry created without a client-supplied one.
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("genpassword: %w", err)
	}

	out := make([]byte, Length)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}
