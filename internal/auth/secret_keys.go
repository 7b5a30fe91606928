package auth

import (
	"crypto/rand"
	"math/big"
)

// Word lists for generating kid-friendly secret keys.
var adjectives = []string{
	"happy", "sunny", "brave", "bright", "swift", "clever", "jolly", "mighty",
	"super", "lucky", "magic", "bouncy", "cheerful", "daring", "gentle", "merry",
	"noble", "quick", "royal", "zippy", "bold", "cosmic", "epic", "groovy",
}

var nouns = []string{
	"dragon", "tiger", "eagle", "dolphin", "panda", "lion", "fox", "hawk",
	"phoenix", "unicorn", "rocket", "wizard", "knight", "robot", "astronaut",
	"hero", "explorer", "comet", "thunder", "tornado", "flame", "spirit", "racer",
}

const keySuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecretKey produces a memorable "adjective-noun-xxxx" key a child
// can type.
func GenerateSecretKey() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}
	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(keySuffixChars))))
		if err != nil {
			return "", err
		}
		suffix[i] = keySuffixChars[n.Int64()]
	}
	return adjective + "-" + noun + "-" + string(suffix), nil
}

func randomElement(slice []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[n.Int64()], nil
}
