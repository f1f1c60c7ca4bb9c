package utils

import (
	"errors"
	"strconv"
)

var (
	ErrEmptyNumbers   = errors.New("numbers must be a non-empty list")
	ErrNotPositiveInt = errors.New("all numbers must be positive integers")
	ErrNotInteger     = errors.New("number must be an integer")
)

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcmTwo(a, b int64) int64 {
	return a / gcd(a, b) * b
}

// LCM computes the least common multiple of a list of positive integers
// given in decimal string form.
func LCM(numbers []string) (int64, error) {
	if len(numbers) == 0 {
		return 0, ErrEmptyNumbers
	}

	values := make([]int64, 0, len(numbers))
	for _, raw := range numbers {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return 0, ErrNotPositiveInt
		}
		values = append(values, n)
	}

	result := values[0]
	for _, n := range values[1:] {
		result = lcmTwo(result, n)
	}
	return result, nil
}

// AddOne parses an integer and returns both the parsed value and that value
// incremented by one, so callers never have to parse the input a second time.
func AddOne(number string) (parsed, result int64, err error) {
	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return 0, 0, ErrNotInteger
	}
	return n, n + 1, nil
}
