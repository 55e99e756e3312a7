package redis

import "fmt"

const (
	// KeyPrefixRepo is the prefix for cached repository metadata keys.
	KeyPrefixRepo = "gallery:repo:"
	// KeyAllRepos is the key for the set of all cached repo keys.
	KeyAllRepos = "gallery:repos:all"
)

// RepoKey returns the Redis key for a repository, id being "owner/name".
func RepoKey(id string) string {
	return KeyPrefixRepo + id
}

// AllReposKey returns the key for the set of all cached repo ids.
func AllReposKey() string {
	return KeyAllRepos
}

// ExtractRepoID extracts the "owner/name" id from a Redis key.
func ExtractRepoID(key string) (string, error) {
	if len(key) <= len(KeyPrefixRepo) {
		return "", fmt.Errorf("invalid repo key: %s", key)
	}
	return key[len(KeyPrefixRepo):], nil
}
