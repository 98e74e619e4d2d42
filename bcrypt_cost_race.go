//go:build race

package devconnect

import "golang.org/x/crypto/bcrypt"

func passwordHashCost() int {
	// race builds hash many times slower, keep the test suite inside its timeout
	return bcrypt.MinCost
}
