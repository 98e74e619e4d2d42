//go:build !race

package devconnect

func passwordHashCost() int {
	return DefaultHashCost
}
