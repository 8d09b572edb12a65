package testutils

import "math/rand/v2"

const randomChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789_"

// RandomString returns n characters that are valid in both a DynamoDB table
// name and an unquoted email local part.
func RandomString(n int) string {
	result := make([]byte, n)
	for i := range result {
		result[i] = randomChars[rand.IntN(len(randomChars))]
	}
	return string(result)
}

// RandomAddress returns a syntactically valid address with an n character
// local part.
func RandomAddress(n int, domain string) string {
	return RandomString(n) + "@" + domain
}
