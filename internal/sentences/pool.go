// Package sentences provides the practice sentence pool and random selection.
package sentences

var defaultPool = []string{
	"Our vicar played football before he came here.",
	"She eats eggs in the morning.",
	"Cats from the alleys control the mice.",
	"He was waiting for the rain to stop.",
	"She was upset when it didn't boil.",
	"You have been sleeping for a long time.",
	"Doubt kills more dreams than failure ever will.",
	"Life is what happens to us while we are making other plans.",
	"It is during our darkest moments that we must focus to see the light.",
	"We may encounter many defeats but we must not be defeated.",
	"We become what we think about.",
}

// Default returns a copy of the built-in sentence pool.
func Default() []string {
	return append([]string(nil), defaultPool...)
}

// Contains reports whether sentence is a member of pool.
func Contains(pool []string, sentence string) bool {
	for _, s := range pool {
		if s == sentence {
			return true
		}
	}
	return false
}
