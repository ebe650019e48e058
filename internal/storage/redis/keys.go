package redis

import "github.com/mpetrie/geohunt/internal/model"

// Key prefixes for Redis storage
const (
	gamePrefix  = "geohunt:game:"
	groupPrefix = "geohunt:group:"
	userPrefix  = "geohunt:user:"
)

func gameKey(id model.GameID) string {
	return gamePrefix + string(id)
}

// groupIndexKey holds the set of game ids owned by a group
func groupIndexKey(groupID model.GroupID) string {
	return groupPrefix + string(groupID)
}

func userKey(username string) string {
	return userPrefix + username
}
