package redis

import (
	"fmt"

	"github.com/mcoot/quarto/internal/model"
)

const keyPrefix = "quarto"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the SET holding the key of every saved game
func gamesIndexKey() string {
	return keyPrefix + ":idx:games"
}
