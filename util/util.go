package util

import (
	"os"

	"golang.org/x/exp/constraints"
)

// SafeFileBase replaces anything non-alphanumeric with an underscore so
// caller-supplied identifiers can name files.
func SafeFileBase(id string) string {
	out := []rune(id)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0777)
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}
