package constants

// MediaType tags a consumed media item.
type MediaType string

const (
	MediaMovie   MediaType = "movie"
	MediaTV      MediaType = "tv"
	MediaBook    MediaType = "book"
	MediaGame    MediaType = "game"
	MediaPodcast MediaType = "podcast"
	MediaMusic   MediaType = "music"
	MediaOther   MediaType = "other"
)

// MediaTypePriority breaks ties when ranking media types. Earlier wins.
var MediaTypePriority = []MediaType{
	MediaMovie,
	MediaTV,
	MediaBook,
	MediaGame,
	MediaPodcast,
	MediaMusic,
	MediaOther,
}

// IsValidMediaType reports whether t is one of the known media types.
func IsValidMediaType(t MediaType) bool {
	for _, known := range MediaTypePriority {
		if known == t {
			return true
		}
	}
	return false
}
